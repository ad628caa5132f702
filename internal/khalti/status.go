package khalti

import "parko/internal/db"

// statusMapping normalizes the gateway's raw status strings into the three
// local payment states. The raw strings come back verbatim from the lookup
// endpoint, including the trailing period on "Not found.".
var statusMapping = map[string]string{
	"Pending":            db.PaymentPending,
	"Initiated":          db.PaymentPending,
	"Completed":          db.PaymentSuccess,
	"Expired":            db.PaymentFailed,
	"User canceled":      db.PaymentFailed,
	"Not found.":         db.PaymentFailed,
	"Refunded":           db.PaymentFailed,
	"Partially Refunded": db.PaymentFailed,
}

// NormalizeStatus maps a raw gateway status to Pending, Success or Failed.
// Unrecognized values are treated as Failed.
func NormalizeStatus(raw string) string {
	if s, ok := statusMapping[raw]; ok {
		return s
	}
	return db.PaymentFailed
}
