package service

import (
	"context"
	"log"
	"time"

	"parko/internal/db"
	"parko/internal/khalti"
)

type StatusChecker interface {
	CheckStatus(ctx context.Context, pidx string) (*khalti.StatusResult, error)
}

type PendingPaymentStore interface {
	ListPending() ([]db.Payment, error)
	UpdateGatewayState(id int, status, gatewayStatus, transactionID string) error
}

type BookingConfirmer interface {
	Confirm(bookingID int) error
}

// Notifier announces a confirmed booking; implementations must be
// best-effort and never block the reconciler.
type Notifier interface {
	BookingConfirmed(bookingID int)
}

// Reconciler polls the payment gateway for every pending payment and folds
// the gateway's state back into local payment and booking rows. It is
// level-triggered: a tick that observes no change writes nothing, so
// overlapping or repeated ticks are harmless.
type Reconciler struct {
	gateway  StatusChecker
	payments PendingPaymentStore
	bookings BookingConfirmer
	notifier Notifier
}

func NewReconciler(gateway StatusChecker, payments PendingPaymentStore, bookings BookingConfirmer, notifier Notifier) *Reconciler {
	return &Reconciler{
		gateway:  gateway,
		payments: payments,
		bookings: bookings,
		notifier: notifier,
	}
}

// Tick processes every pending payment once. A failure on one payment is
// logged and does not stop the rest of the batch; a gateway transport
// failure leaves the payment untouched for the next tick.
func (r *Reconciler) Tick(ctx context.Context) error {
	payments, err := r.payments.ListPending()
	if err != nil {
		return err
	}

	for _, payment := range payments {
		r.reconcile(ctx, payment)
	}
	return nil
}

func (r *Reconciler) reconcile(ctx context.Context, payment db.Payment) {
	result, err := r.gateway.CheckStatus(ctx, payment.Pidx)
	if err != nil {
		// No update; the next tick retries.
		log.Printf("Status lookup failed for payment %d (pidx %s): %v", payment.ID, payment.Pidx, err)
		return
	}

	if result.GatewayStatus == payment.GatewayStatus {
		return
	}

	err = r.payments.UpdateGatewayState(payment.ID, result.Status, result.GatewayStatus, result.TransactionID)
	if err != nil {
		log.Printf("Failed to update payment %d: %v", payment.ID, err)
		return
	}
	log.Printf("Payment %d updated to %s (gateway: %s)", payment.ID, result.Status, result.GatewayStatus)

	if result.Status != db.PaymentSuccess {
		return
	}

	if err := r.bookings.Confirm(payment.BookingID); err != nil {
		log.Printf("Failed to confirm booking %d for payment %d: %v", payment.BookingID, payment.ID, err)
		return
	}
	if r.notifier != nil {
		r.notifier.BookingConfirmed(payment.BookingID)
	}
}

type StaleBookingStore interface {
	DeleteUnconfirmedBefore(cutoff time.Time) (int64, error)
}

// CleanupStaleBookings drops unconfirmed bookings older than maxAge whose
// payment links were abandoned.
func CleanupStaleBookings(store StaleBookingStore, maxAge time.Duration) error {
	deleted, err := store.DeleteUnconfirmedBefore(time.Now().UTC().Add(-maxAge))
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("Deleted %d stale unconfirmed bookings", deleted)
	}
	return nil
}
