package models

import (
	"time"

	"github.com/google/uuid"
)

// ID represents a unique identifier
type ID string

// GenerateUUID creates a new UUID
func GenerateUUID() ID {
	return ID(uuid.New().String())
}

// NewID creates an ID from string
func NewID(id string) (ID, error) {
	_, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	return ID(id), nil
}

// String returns string representation
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID is unset
func (id ID) IsZero() bool {
	return id == ""
}

// Timestamps represents creation and update times.
// All values are kept in UTC.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTimestamps creates new timestamps
func NewTimestamps(now time.Time) Timestamps {
	now = now.UTC()
	return Timestamps{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update updates the UpdatedAt timestamp
func (t Timestamps) Update(now time.Time) Timestamps {
	t.UpdatedAt = now.UTC()
	return t
}

// Version represents entity version for optimistic locking
type Version struct {
	Value int
}

// NewVersion creates new version
func NewVersion() Version {
	return Version{Value: 1}
}

// Update increments version
func (v Version) Update() Version {
	v.Value++
	return v
}

// Previous returns the version the row is expected to hold before an update
func (v Version) Previous() int {
	return v.Value - 1
}

// Clock returns the current time; injected so use cases can be tested deterministically
type Clock func() time.Time

// SystemClock returns time.Now in UTC
func SystemClock() time.Time {
	return time.Now().UTC()
}
