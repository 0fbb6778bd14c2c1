package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	if !IsTimeout(MapDBError(context.DeadlineExceeded)) {
		t.Error("deadline exceeded should map to Timeout")
	}
	if !IsCanceled(MapDBError(context.Canceled)) {
		t.Error("canceled should map to Canceled")
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(pgx.ErrNoRows) should be NotFound, got %v", GetCode(err))
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{
			name: "column name metadata",
			pgErr: &pgconn.PgError{
				Code:       pgerrcode.UniqueViolation,
				ColumnName: "email",
			},
			wantField: "email",
		},
		{
			name: "field from detail",
			pgErr: &pgconn.PgError{
				Code:   pgerrcode.UniqueViolation,
				Detail: "Key (email)=(a@b.com) already exists.",
			},
			wantField: "email",
		},
		{
			name: "no field information",
			pgErr: &pgconn.PgError{
				Code: pgerrcode.UniqueViolation,
			},
			wantField: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsConflict(err) {
				t.Fatalf("expected Conflict, got %v", GetCode(err))
			}
			if got := GetField(err); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestMapDBError_NotNullViolation(t *testing.T) {
	err := MapDBError(&pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		ColumnName: "company",
	})
	if !IsValidation(err) {
		t.Fatalf("expected Validation, got %v", GetCode(err))
	}
	if GetField(err) != "company" {
		t.Errorf("field = %q", GetField(err))
	}
}

func TestMapDBError_CheckViolation(t *testing.T) {
	err := MapDBError(&pgconn.PgError{
		Code:       pgerrcode.CheckViolation,
		ColumnName: "status",
	})
	if !IsValidation(err) {
		t.Fatalf("expected Validation, got %v", GetCode(err))
	}
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	if !IsInternal(err) {
		t.Errorf("unhandled pg error should map to Internal, got %v", GetCode(err))
	}
}

func TestMapDBError_Passthrough(t *testing.T) {
	plain := errors.New("not a db error")
	if got := MapDBError(plain); got != plain {
		t.Errorf("unrecognized error should pass through, got %v", got)
	}
}
