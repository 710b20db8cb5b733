package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateNil(t *testing.T) {
	assert.Nil(t, Translate("createUser", nil))
}

func TestTranslateUniqueViolation(t *testing.T) {
	cause := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	err := Translate("createUser", cause)

	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "Unique constraint violation", dbErr.Message)
	assert.Equal(t, "createUser", dbErr.Operation)
	assert.Equal(t, KindConflict, dbErr.Kind)
	assert.ErrorIs(t, err, cause)
}

func TestTranslateForeignKeyViolation(t *testing.T) {
	err := Translate("saveMessages", &pgconn.PgError{Code: "23503"})
	assert.Equal(t, KindForeignKey, KindOf(err))
	assert.Contains(t, err.Error(), "Foreign key constraint violation")
}

func TestTranslateValidation(t *testing.T) {
	cases := []error{
		&pgconn.PgError{Code: "23502"}, // not null
		&pgconn.PgError{Code: "23514"}, // check
		&pgconn.PgError{Code: "22001"}, // string too long
		gorm.ErrInvalidData,
	}
	for _, cause := range cases {
		err := Translate("saveChat", cause)
		assert.Equal(t, KindValidation, KindOf(err), "cause: %v", cause)
		assert.Contains(t, err.Error(), "Invalid data provided")
	}
}

func TestTranslateRecordNotFound(t *testing.T) {
	err := Translate("updateChatVisibility", gorm.ErrRecordNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "Record not found")
}

func TestTranslateWrappedCause(t *testing.T) {
	// GORM wraps driver errors; classification must survive wrapping.
	cause := fmt.Errorf("exec insert: %w", &pgconn.PgError{Code: "23505"})
	err := Translate("voteMessage", cause)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestTranslateUnknown(t *testing.T) {
	err := Translate("getUser", errors.New("connection reset"))
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Contains(t, err.Error(), "Unexpected database error")
	assert.Contains(t, err.Error(), "getUser")
}

func TestIsKind(t *testing.T) {
	err := Translate("createUser", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(nil, KindConflict))
}
