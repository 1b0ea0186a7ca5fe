// Package pgerrors classifies lib/pq errors by SQLSTATE.
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	CodeUniqueViolation      = "23505"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeInvalidText          = "22P02"
)

// Code returns the SQLSTATE of err, or "" when err is not a *pq.Error
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsSerializationFailure also covers deadlocks, both are retryable conflicts
func IsSerializationFailure(err error) bool {
	c := Code(err)
	return c == CodeSerializationFailure || c == CodeDeadlockDetected
}

func IsInvalidText(err error) bool {
	return Code(err) == CodeInvalidText
}
