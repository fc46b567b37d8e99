package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEventCreatedPrepends(t *testing.T) {
	local := []Project{{ProjectId: "a"}}
	out := ApplyEvent(local, Event{Type: EventCreated, Project: Project{ProjectId: "b", Name: "New"}})

	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ProjectId)
	assert.Equal(t, "a", out[1].ProjectId)
}

func TestApplyEventCreatedIsIdempotent(t *testing.T) {
	// the same event may arrive twice (ws plus reconnect replay)
	local := []Project{{ProjectId: "a", Name: "old"}}
	ev := Event{Type: EventCreated, Project: Project{ProjectId: "a", Name: "new"}}

	out := ApplyEvent(local, ev)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].Name)
}

func TestApplyEventUpdatedReplacesById(t *testing.T) {
	local := []Project{{ProjectId: "a", Name: "old"}, {ProjectId: "b"}}
	out := ApplyEvent(local, Event{Type: EventUpdated, Project: Project{ProjectId: "a", Name: "renamed"}})

	require.Len(t, out, 2)
	assert.Equal(t, "renamed", out[0].Name)
}

func TestApplyEventUpdatedUnknownIdIsNoop(t *testing.T) {
	local := []Project{{ProjectId: "a"}}
	out := ApplyEvent(local, Event{Type: EventUpdated, Project: Project{ProjectId: "zz"}})
	assert.Equal(t, local, out)
}

func TestApplyEventDeletedRemovesById(t *testing.T) {
	local := []Project{{ProjectId: "a"}, {ProjectId: "b"}, {ProjectId: "c"}}
	out := ApplyEvent(local, Event{Type: EventDeleted, Project: Project{ProjectId: "b"}})

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ProjectId)
	assert.Equal(t, "c", out[1].ProjectId)
}

func TestApplyEventDeletedLeavesInputIntact(t *testing.T) {
	// callers may keep the pre-event slice, e.g. for an undo view
	local := []Project{{ProjectId: "a"}, {ProjectId: "b"}, {ProjectId: "c"}}
	ApplyEvent(local, Event{Type: EventDeleted, Project: Project{ProjectId: "a"}})

	require.Len(t, local, 3)
	assert.Equal(t, "a", local[0].ProjectId)
	assert.Equal(t, "b", local[1].ProjectId)
	assert.Equal(t, "c", local[2].ProjectId)
}

func TestApplyEventUnknownTypeIsNoop(t *testing.T) {
	local := []Project{{ProjectId: "a"}}
	out := ApplyEvent(local, Event{Type: "mystery"})
	assert.Equal(t, local, out)
}
