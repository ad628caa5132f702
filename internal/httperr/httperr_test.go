package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, From(NotFound("missing")).Code)
	assert.Equal(t, "missing", From(NotFound("missing")).Message)

	// Wrapped errors still resolve to their status.
	wrapped := fmt.Errorf("handler: %w", Conflict("taken"))
	assert.Equal(t, http.StatusConflict, From(wrapped).Code)

	// Anything else is an opaque 500.
	internal := From(errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
	assert.NotContains(t, internal.Message, "pq:")
}
