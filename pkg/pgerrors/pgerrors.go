// Package pgerrors classifies PostgreSQL errors returned by lib/pq.
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeCheckViolation       = "23514"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// Code returns the SQLSTATE of err, or "" when err is not a *pq.Error.
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// Constraint returns the violated constraint name, or "".
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsUniqueViolation reports a unique violation; an empty constraint matches any.
func IsUniqueViolation(err error, constraint string) bool {
	return matches(err, CodeUniqueViolation, constraint)
}

// IsExclusionViolation reports an exclusion constraint violation; an empty constraint matches any.
func IsExclusionViolation(err error, constraint string) bool {
	return matches(err, CodeExclusionViolation, constraint)
}

// IsCheckViolation reports a CHECK constraint violation; an empty constraint matches any.
func IsCheckViolation(err error, constraint string) bool {
	return matches(err, CodeCheckViolation, constraint)
}

// IsForeignKeyViolation reports a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsSerializationFailure reports errors after which the transaction should be retried by the client.
func IsSerializationFailure(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}

func matches(err error, code, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
