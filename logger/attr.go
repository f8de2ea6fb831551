package logger

import (
	"log/slog"
)

/*
Log attribute key values. Generally shouldn't be used directly, use
appropriate "attribute constructor function" instead.

Only define names here if they are common for multiple modules, module
specific names should be defined in the module.
*/
const (
	ErrorKey    = "err"
	TxIDKey     = "tx_id"
	ProviderKey = "provider"
	AddressKey  = "address"
	SourceKey   = "source"
)

/*
Error adds error to the log

	if err:= f(); err != nil {
		log.Error("calling f", logger.Error(err))
	}
*/
func Error(err error) slog.Attr {
	return slog.Any(ErrorKey, err)
}

/*
TxID is used to log the transaction identifier associated to the
logging call.
*/
func TxID(id string) slog.Attr {
	return slog.String(TxIDKey, id)
}

// Provider records the wallet capability provider brand.
func Provider(id string) slog.Attr {
	return slog.String(ProviderKey, id)
}

// Address records a wallet address.
func Address(addr string) slog.Attr {
	return slog.String(AddressKey, addr)
}

// Source records which storage backend served an operation.
func Source(name string) slog.Attr {
	return slog.String(SourceKey, name)
}
