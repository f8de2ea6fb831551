package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cardano-preview/walletdemo/logger"
)

const (
	headerContentType = "Content-Type"
	applicationJSON   = "application/json"
)

type (
	restAPI struct {
		store          TxStore
		mongoConnected bool
		log            *slog.Logger
	}

	HealthResponse struct {
		Ok             bool   `json:"ok"`
		Message        string `json:"message"`
		MongoConnected bool   `json:"mongoConnected"`
	}

	ListTransactionsResponse struct {
		Ok     bool        `json:"ok"`
		Source string      `json:"source"`
		Items  []*TxRecord `json:"items"`
	}

	CreateTransactionRequest struct {
		TxHash        string `json:"txHash"`
		WalletAddress string `json:"walletAddress"`
		Network       string `json:"network"`
	}

	CreateTransactionResponse struct {
		Ok     bool      `json:"ok"`
		Source string    `json:"source"`
		Item   *TxRecord `json:"item"`
	}

	ErrorResponse struct {
		Ok      bool   `json:"ok"`
		Message string `json:"message"`
	}
)

func (api *restAPI) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	apiRouter := router.PathPrefix("/api").Subrouter()
	// content-type needs to be explicitly allowed, without it the cors
	// filter rejects the json POST issued by the browser UI
	apiRouter.Use(handlers.CORS(handlers.AllowedHeaders([]string{headerContentType})))

	apiRouter.HandleFunc("/health", api.healthFunc).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/transactions", api.listTransactionsFunc).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/transactions", api.createTransactionFunc).Methods("POST", "OPTIONS")
	return router
}

func (api *restAPI) healthFunc(w http.ResponseWriter, _ *http.Request) {
	api.writeResponse(w, http.StatusOK, &HealthResponse{
		Ok:             true,
		Message:        "walletdemo collector is up",
		MongoConnected: api.mongoConnected,
	})
}

func (api *restAPI) listTransactionsFunc(w http.ResponseWriter, r *http.Request) {
	records, err := api.store.GetTransactions(r.Context(), ListLimit)
	if err != nil {
		storeFaults.WithLabelValues("list").Inc()
		api.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to load transactions: %w", err))
		return
	}
	if records == nil {
		records = []*TxRecord{}
	}
	api.writeResponse(w, http.StatusOK, &ListTransactionsResponse{
		Ok:     true,
		Source: api.store.Name(),
		Items:  records,
	})
}

func (api *restAPI) createTransactionFunc(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	req := &CreateTransactionRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		createRejected.Inc()
		api.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	rec, err := NewTxRecord(req.TxHash, req.WalletAddress, req.Network)
	if err != nil {
		if !errors.Is(err, ErrInvalidTxHash) {
			api.writeError(w, http.StatusInternalServerError, err)
			return
		}
		createRejected.Inc()
		api.writeError(w, http.StatusBadRequest, err)
		return
	}

	stored, err := api.store.CreateTransaction(r.Context(), rec)
	if err != nil {
		storeFaults.WithLabelValues("create").Inc()
		api.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to store transaction: %w", err))
		return
	}
	transactionsCreated.Inc()
	api.log.Info("transaction record stored", logger.TxID(stored.TxHash), logger.Source(api.store.Name()))

	api.writeResponse(w, http.StatusCreated, &CreateTransactionResponse{
		Ok:     true,
		Source: api.store.Name(),
		Item:   stored,
	})
}

func (api *restAPI) writeResponse(w http.ResponseWriter, code int, data any) {
	w.Header().Set(headerContentType, applicationJSON)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		api.log.Warn("failed to encode response data as json", logger.Error(err))
	}
}

func (api *restAPI) writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set(headerContentType, applicationJSON)
	w.WriteHeader(code)
	if code >= http.StatusInternalServerError {
		api.log.Error("request failed", logger.Error(err))
	}
	if err := json.NewEncoder(w).Encode(ErrorResponse{Message: err.Error()}); err != nil {
		api.log.Warn("failed to encode error response as json", logger.Error(err))
	}
}
