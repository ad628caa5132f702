package utils

import (
	"strings"

	"github.com/google/uuid"
)

// OrderID returns a 16-character hex id for gateway purchase orders.
func OrderID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
