package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "todo-list/internal/errors"

	"github.com/stretchr/testify/assert"
)

type fakeResult struct {
	affected int64
	err      error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.affected, f.err }

func TestDBError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType apperrors.ErrorType
	}{
		{"driver failure", errors.New("database is locked"), apperrors.ErrorTypeDatabase},
		{"deadline", fmt.Errorf("exec: %w", context.DeadlineExceeded), apperrors.ErrorTypeTimeout},
		{"cancelled", context.Canceled, apperrors.ErrorTypeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dbError("put items", tt.err)
			assert.True(t, apperrors.IsErrorType(err, tt.wantType), "got %v", err)
			assert.Contains(t, err.Error(), "put items")
		})
	}
}

func TestTouchedKey(t *testing.T) {
	tests := []struct {
		name     string
		result   fakeResult
		wantType apperrors.ErrorType
	}{
		{"one row", fakeResult{affected: 1}, ""},
		{"no rows", fakeResult{}, apperrors.ErrorTypeNotFound},
		{"driver cannot count", fakeResult{err: errors.New("unsupported")}, apperrors.ErrorTypeDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := touchedKey(tt.result, "projects")
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsErrorType(err, tt.wantType), "got %v", err)
		})
	}
}
