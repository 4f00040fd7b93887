package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	errA := NewError(http.StatusNotFound, "faq not found")
	same := NewError(http.StatusNotFound, "faq not found")
	other := NewError(http.StatusBadRequest, "faq not found")

	assert.True(t, errors.Is(errA, same))
	assert.False(t, errors.Is(errA, other))
	assert.True(t, errors.Is(fmt.Errorf("lookup: %w", errA), same))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, CodeOf(NewError(http.StatusNotFound, "x"), 500))
	assert.Equal(t, http.StatusTeapot, CodeOf(errors.New("plain"), http.StatusTeapot))
	assert.Equal(t, http.StatusConflict, CodeOf(fmt.Errorf("wrapped: %w", &Error{Code: http.StatusConflict, Err: errors.New("y")}), 500))
}
