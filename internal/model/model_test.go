package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ImportMode
		wantErr bool
	}{
		{in: "", want: ImportModeAppend},
		{in: "append", want: ImportModeAppend},
		{in: "replace", want: ImportModeReplace},
		{in: "Replace", wantErr: true},
		{in: "merge", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseImportMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	t.Parallel()

	verr := fmt.Errorf("part.service.BulkImport: %w", errors.Join(
		NewValidationError(2, "PART002", FieldError{Field: "category", Reason: "must be one of Mechanical, Electrical, Pneumatic"}),
		NewValidationError(5, "", FieldError{Field: "part_number", Reason: "is required"}),
	))
	assert.ErrorIs(t, verr, ErrValidation)
	assert.Contains(t, verr.Error(), "at row 2")
	assert.Contains(t, verr.Error(), "at row 5")

	var ve *ValidationError
	require.ErrorAs(t, verr, &ve)
	assert.Equal(t, "PART002", ve.PartNumber)

	derr := fmt.Errorf("wrap: %w", &DuplicateKeyError{PartNumbers: []string{"A", "B"}})
	assert.ErrorIs(t, derr, ErrDuplicateKey)
	assert.EqualError(t, derr, "wrap: duplicate part number: A, B")

	serr := &SchemaMismatchError{Expected: []string{"a", "b"}, Found: []string{"a"}, Missing: []string{"b"}}
	assert.ErrorIs(t, serr, ErrSchemaMismatch)
	assert.NotErrorIs(t, serr, ErrValidation)
}

func TestDateKeepsWallDate(t *testing.T) {
	t.Parallel()

	jakarta := time.FixedZone("WIB", 7*60*60)
	late := time.Date(2024, time.March, 15, 23, 30, 0, 0, jakarta)

	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), Date(late))
	assert.Equal(t, "2024-03-15", FormatDate(late))

	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date(d), d)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}

func TestEnumsValid(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		assert.True(t, c.Valid())
	}
	for _, s := range Statuses() {
		assert.True(t, s.Valid())
	}
	assert.False(t, Category("mechanical").Valid())
	assert.False(t, Status("Replace").Valid())
}
