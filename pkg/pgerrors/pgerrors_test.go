package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := &pq.Error{Code: CodeUniqueViolation, Constraint: "unique_staff_time_slot"}
	wrapped := fmt.Errorf("appointment.repository: failed to execute query: %w", unique)

	assert.Equal(t, CodeUniqueViolation, Code(wrapped))
	assert.Equal(t, "unique_staff_time_slot", Constraint(wrapped))
	assert.True(t, IsUniqueViolation(wrapped, ""))
	assert.True(t, IsUniqueViolation(wrapped, "unique_staff_time_slot"))
	assert.False(t, IsUniqueViolation(wrapped, "daycare_sessions_date_key"))
	assert.False(t, IsExclusionViolation(wrapped, ""))

	exclusion := &pq.Error{Code: CodeExclusionViolation, Constraint: "appointments_no_overlap"}
	assert.True(t, IsExclusionViolation(exclusion, "appointments_no_overlap"))

	assert.True(t, IsSerializationFailure(&pq.Error{Code: CodeSerializationFailure}))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: CodeDeadlockDetected}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: CodeForeignKeyViolation}))
	assert.True(t, IsCheckViolation(&pq.Error{Code: CodeCheckViolation}, ""))
}

func TestNonPostgresErrors(t *testing.T) {
	err := errors.New("connection reset")
	assert.Equal(t, "", Code(err))
	assert.Equal(t, "", Constraint(err))
	assert.False(t, IsUniqueViolation(err, ""))
	assert.False(t, IsSerializationFailure(nil))
}
