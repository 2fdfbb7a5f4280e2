package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalStatus(t *testing.T) {
	assert.Equal(t, StatusForwarded, CanonicalStatus("Forwarded to RC"))
	assert.Equal(t, StatusForwarded, CanonicalStatus("forwarded"))
	assert.Equal(t, StatusPending, CanonicalStatus("Pending"))
	assert.Equal(t, StatusAdmitted, CanonicalStatus("admitted"))
	assert.Equal(t, StatusPublished, CanonicalStatus("Published"))
	// unrecognized tags collapse to Rejected; historic behavior, kept as is
	assert.Equal(t, StatusRejected, CanonicalStatus("WeirdUnknownValue"))
	assert.Equal(t, StatusRejected, CanonicalStatus(""))
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusForwarded))
	assert.True(t, StatusForwarded.CanTransition(StatusAdmitted))
	assert.True(t, StatusAdmitted.CanTransition(StatusPublished))
	assert.True(t, StatusPending.CanTransition(StatusRejected))

	assert.False(t, StatusPending.CanTransition(StatusAdmitted))
	assert.False(t, StatusPublished.CanTransition(StatusPending))
	assert.False(t, StatusRejected.CanTransition(StatusForwarded))
}
