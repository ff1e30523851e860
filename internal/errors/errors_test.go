package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewParsingError("bad row", fmt.Errorf("unexpected token")),
			want: "[PARSING] bad row: unexpected token",
		},
		{
			name: "without cause",
			err:  NewValidationError("plot code empty"),
			want: "[VALIDATION] plot code empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewStorageError("write failed", cause)

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewConfigError("bad delimiter", nil).
		WithContext("delimiter", "||")

	assert.Equal(t, "||", err.Context["delimiter"])
}

func TestSchemaError_MissingColumns(t *testing.T) {
	err := NewMissingColumnsError([]string{"plot_code", "trap_num"})

	assert.True(t, IsSchemaError(err))
	assert.Contains(t, err.Error(), "plot_code")
	assert.Contains(t, err.Error(), "trap_num")
}

func TestSchemaError_UncoercibleCell(t *testing.T) {
	err := NewUncoercibleCellError(7, "year", "twenty")

	assert.True(t, IsSchemaError(err))
	assert.Contains(t, err.Error(), `"year"`)
	assert.Contains(t, err.Error(), "row 7")
	assert.Contains(t, err.Error(), `"twenty"`)
}

func TestIsSchemaError_OtherError(t *testing.T) {
	assert.False(t, IsSchemaError(fmt.Errorf("plain")))
	assert.False(t, IsSchemaError(NewValidationError("nope")))
}
