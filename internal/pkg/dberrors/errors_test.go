package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	uniqueViolation := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "department_users_email_key",
	}

	assert.True(t, IsDuplicateConstraintError(uniqueViolation, "department_users_email_key"))
	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", uniqueViolation), "department_users_email_key"))

	// Same code, different constraint
	assert.False(t, IsDuplicateConstraintError(uniqueViolation, "supervisors_name_key"))

	// Different code
	notNull := &pgconn.PgError{Code: "23502", ConstraintName: "department_users_email_key"}
	assert.False(t, IsDuplicateConstraintError(notNull, "department_users_email_key"))

	// Not a pg error at all
	assert.False(t, IsDuplicateConstraintError(errors.New("connection refused"), "department_users_email_key"))
	assert.False(t, IsDuplicateConstraintError(nil, "department_users_email_key"))
}
