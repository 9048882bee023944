package utils

import (
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// NewID generates a globally unique, sortable KSUID string. Used for
// user and credential ids.
func NewID() string {
	return ksuid.New().String()
}

// NewRequestID generates a request correlation id carried in envelope meta.
func NewRequestID() string {
	return "req-" + uuid.NewString()
}
