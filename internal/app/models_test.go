package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionFor(t *testing.T) {
	assert.Equal(t, "appointments", partitionFor(StatusActive))
	assert.Equal(t, "archived_appointments", partitionFor(StatusDone))
	assert.Equal(t, "archived_appointments", partitionFor(StatusCancelled))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusDone.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("active").Valid())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, canTransition(StatusActive, StatusDone))
	assert.True(t, canTransition(StatusActive, StatusCancelled))
	assert.True(t, canTransition(StatusDone, StatusActive))

	// Cancelled is terminal.
	assert.False(t, canTransition(StatusCancelled, StatusActive))
	assert.False(t, canTransition(StatusCancelled, StatusDone))
	assert.False(t, canTransition(StatusDone, StatusCancelled))
	assert.False(t, canTransition(StatusActive, StatusActive))
}
