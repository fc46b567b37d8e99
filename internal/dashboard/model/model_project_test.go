package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalStatus(t *testing.T) {
	assert.Equal(t, StatusNotStarted, CanonicalStatus("not started"))
	assert.Equal(t, StatusInProgress, CanonicalStatus("IN PROGRESS"))
	assert.Equal(t, StatusCompleted, CanonicalStatus(" Completed "))
	assert.Equal(t, StatusOnHold, CanonicalStatus("on hold"))
	assert.Equal(t, "", CanonicalStatus("done"))
	assert.Equal(t, "", CanonicalStatus(""))
}

func TestCanonicalPriority(t *testing.T) {
	assert.Equal(t, PriorityLow, CanonicalPriority("low"))
	assert.Equal(t, PriorityCritical, CanonicalPriority("CRITICAL"))
	assert.Equal(t, "", CanonicalPriority("urgent"))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusCompleted))
	assert.False(t, ValidStatus("completed"))
	assert.False(t, ValidStatus(""))
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityMedium))
	assert.False(t, ValidPriority("MEDIUM"))
}
