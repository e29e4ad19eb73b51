package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	valid := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	invalid := []Status{"", "archived", "PENDING", "done", "canceled"}
	for _, s := range invalid {
		assert.False(t, s.Valid(), "expected %q to be rejected", s)
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus())
}
