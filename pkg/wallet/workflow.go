package wallet

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cardano-preview/walletdemo/logger"
)

// Step is the transaction workflow state. Steps advance in strict
// forward order, StepError is reachable from any non terminal step.
type Step int

const (
	StepIdle Step = iota
	StepBuilding
	StepSigning
	StepSubmitting
	StepConfirming
	StepSuccess
	StepError
)

func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepBuilding:
		return "building"
	case StepSigning:
		return "signing"
	case StepSubmitting:
		return "submitting"
	case StepConfirming:
		return "confirming"
	case StepSuccess:
		return "success"
	case StepError:
		return "error"
	default:
		return "unknown"
	}
}

const defaultConfirmDelay = 8 * time.Second

type (
	// TransactionStatus is the workflow progress snapshot shown to the
	// user. TxHash is empty until submission succeeds and is never
	// cleared within the same run.
	TransactionStatus struct {
		Step    Step
		Message string
		TxHash  string
	}

	// Notifier posts a completed transaction to the collector service.
	Notifier interface {
		ReportTransaction(ctx context.Context, txHash, walletAddress, network string) error
	}

	/*
		Workflow drives a single build -> sign -> submit -> confirm run
		against the connected wallet capability. At most one run is in
		flight per wallet session, concurrent triggers are no-ops.
	*/
	Workflow struct {
		conn     *ConnectionManager
		notifier Notifier
		network  string
		log      *slog.Logger

		// heuristic wait after submission before the balance refresh,
		// there is no confirmation proof nor inclusion polling
		confirmDelay time.Duration

		running atomic.Bool
		mu      sync.RWMutex
		status  TransactionStatus
	}
)

// NewWorkflow creates a workflow for the given wallet session. The
// notifier may be nil in which case no persistence notification is sent.
func NewWorkflow(conn *ConnectionManager, notifier Notifier, log *slog.Logger) *Workflow {
	return &Workflow{
		conn:         conn,
		notifier:     notifier,
		network:      NetworkPreprod,
		log:          log,
		confirmDelay: defaultConfirmDelay,
		status:       TransactionStatus{Step: StepIdle},
	}
}

// Status returns the current workflow snapshot.
func (w *Workflow) Status() TransactionStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

/*
SendToSelf runs the full workflow: builds a transaction paying
SelfTransferAmount lovelace to the wallet's own change address, has the
capability sign and submit it, waits for the network to propagate the
transaction, refreshes the balance and reports the hash to the
collector.

A run already being in flight is a silent no-op (ErrAlreadyRunning is
returned but no state transition happens). There is no automatic retry,
a failed run must be re-triggered manually.
*/
func (w *Workflow) SendToSelf(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer w.running.Store(false)

	provider, err := w.conn.Provider()
	if err != nil {
		w.fail(err, "Wallet is not connected")
		return err
	}

	w.setStatus(TransactionStatus{Step: StepBuilding, Message: "Building transaction..."})
	addr, err := provider.GetChangeAddress(ctx)
	if err != nil {
		w.fail(err, "Failed to build transaction")
		return err
	}
	unsigned, err := provider.BuildTransfer(ctx, addr, SelfTransferAmount)
	if err != nil {
		w.fail(err, "Failed to build transaction")
		return err
	}

	w.setStep(StepSigning, "Waiting for signature...")
	signed, err := provider.SignTx(ctx, unsigned)
	if err != nil {
		w.fail(err, "Transaction was not signed")
		return err
	}

	w.setStep(StepSubmitting, "Submitting transaction...")
	txHash, err := provider.SubmitTx(ctx, signed)
	if err != nil {
		w.fail(err, "Failed to submit transaction")
		return err
	}

	w.mu.Lock()
	w.status = TransactionStatus{Step: StepConfirming, Message: "Waiting for the network to register the transaction...", TxHash: txHash}
	w.mu.Unlock()
	w.log.Info("transaction submitted", logger.TxID(txHash))

	// unconditional propagation wait, not a cancellable confirmation
	time.Sleep(w.confirmDelay)

	if _, err := w.conn.RefreshBalance(ctx); err != nil {
		w.fail(err, "Failed to refresh balance")
		return err
	}
	w.setStep(StepSuccess, "Transaction submitted successfully")

	// best effort, persistence failure never surfaces as a workflow
	// failure since the transaction already succeeded on chain
	if w.notifier != nil {
		if err := w.notifier.ReportTransaction(ctx, txHash, addr, w.network); err != nil {
			w.log.Warn("reporting transaction to collector", logger.Error(err), logger.TxID(txHash))
		}
	}
	return nil
}

// setStep advances the step keeping the already recorded tx hash.
func (w *Workflow) setStep(step Step, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status.Step = step
	w.status.Message = message
}

func (w *Workflow) setStatus(status TransactionStatus) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
}

// fail records the most specific available message and moves to the
// error step.
func (w *Workflow) fail(err error, fallback string) {
	message := fallback
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	w.mu.Lock()
	w.status.Step = StepError
	w.status.Message = message
	w.mu.Unlock()
	w.log.Error("transaction workflow failed", logger.Error(err))
}
