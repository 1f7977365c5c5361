package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := GenerateUUID()
	parsed, err := NewID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = NewID("not-a-uuid")
	assert.Error(t, err)
	assert.True(t, ID("").IsZero())
}

func TestTimestamps_Update(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("UTC-3", -3*3600))
	ts := NewTimestamps(created)
	assert.Equal(t, time.UTC, ts.CreatedAt.Location())
	assert.Equal(t, ts.CreatedAt, ts.UpdatedAt)

	later := created.Add(time.Hour)
	updated := ts.Update(later)
	assert.Equal(t, ts.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.Equal(later))
}

func TestVersion(t *testing.T) {
	v := NewVersion()
	assert.Equal(t, 1, v.Value)

	next := v.Update()
	assert.Equal(t, 2, next.Value)
	assert.Equal(t, 1, next.Previous())
}
