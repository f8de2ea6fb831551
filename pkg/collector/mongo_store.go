package collector

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName           = "walletdemo"
	collectionTransactions = "transactions"

	mongoConnectTimeout = 5 * time.Second
)

// mongoTxStore is the durable store, selected at startup when a
// connection string is configured and the server is reachable.
type mongoTxStore struct {
	client *mongo.Client
	txs    *mongo.Collection
}

/*
NewMongoTxStore connects to the configured mongo server and pings it so
an unreachable durable store is detected at startup rather than on the
first request.
*/
func NewMongoTxStore(ctx context.Context, uri string) (TxStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	return &mongoTxStore{
		client: client,
		txs:    client.Database(databaseName).Collection(collectionTransactions),
	}, nil
}

func (s *mongoTxStore) Name() string {
	return "mongo"
}

func (s *mongoTxStore) CreateTransaction(ctx context.Context, rec *TxRecord) (*TxRecord, error) {
	if _, err := s.txs.InsertOne(ctx, rec); err != nil {
		return nil, fmt.Errorf("inserting transaction record: %w", err)
	}
	return rec, nil
}

func (s *mongoTxStore) GetTransactions(ctx context.Context, limit int) ([]*TxRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.txs.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying transaction records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*TxRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding transaction records: %w", err)
	}
	return records, nil
}

// Close releases the mongo client, used on service shutdown.
func (s *mongoTxStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
