package errors_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	pkgerrors "github.com/nationalarchives/ctd-nfs/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("missing variant file", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("records/12A.yaml", fs.ErrNotExist)
		assert.Equal(t, "variant file records/12A.yaml does not exist", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("joined", func(t *testing.T) {
		wrapped := errors.Join(errors.New("failed"), pkgerrors.NewNotFoundError("names.yaml", nil))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "workers",
			Message: "must be positive",
		}
		assert.Equal(t, "invalid workers: must be positive", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "empty document",
		}
		assert.Equal(t, "invalid input: empty document", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapValidation("variants", nil, nil))

		cause := errors.New("expected a string")
		err := pkgerrors.WrapValidation("variants[2]", []any{"x"}, cause)
		assert.True(t, pkgerrors.IsValidationError(err))
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, "invalid variants[2]: expected a string", err.Error())
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{
			name: "with file",
			err:  &pkgerrors.ParseError{Format: "json", File: "names.json", Message: "unexpected EOF"},
			want: "malformed json variants in names.json: unexpected EOF",
		},
		{
			name: "bare",
			err:  &pkgerrors.ParseError{Format: "yaml", Message: "not a mapping"},
			want: "malformed yaml variants: not a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, pkgerrors.IsValidationError(tt.err))
		})
	}

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("boom")
		err := pkgerrors.WrapParse("yaml", "x.yaml", base)
		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "x.yaml", parseErr.File)
		assert.Equal(t, base, errors.Unwrap(err))
	})
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("permission denied")
		err := pkgerrors.NewIOError("read", "/data/names.yaml", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Equal(t, "read /data/names.yaml: permission denied", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
		err := pkgerrors.WrapIO("write", "report.json", errors.New("disk full"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "write", ioErr.Operation)
	})
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("reconciler", "workers must be positive", nil)
	assert.Equal(t, "bad reconciler configuration: workers must be positive", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestFieldAndUnresolvedErrors(t *testing.T) {
	t.Run("canceled field", func(t *testing.T) {
		err := pkgerrors.WrapCanceled("7", context.Canceled)
		assert.True(t, pkgerrors.IsCanceled(err))
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Contains(t, err.Error(), `"7"`)
	})

	t.Run("unresolved", func(t *testing.T) {
		err := pkgerrors.NewUnresolvedError([]string{"3", "9"})
		assert.True(t, pkgerrors.IsUnresolved(err))
		assert.Equal(t, "2 field(s) need manual review: 3, 9", err.Error())
	})
}
