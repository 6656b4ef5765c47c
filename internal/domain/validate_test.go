package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"four chars", "abcd", true},
		{"five chars", "abcde", false},
		{"twenty chars", strings.Repeat("a", 20), false},
		{"twenty one chars", strings.Repeat("a", 21), true},
		{"empty", "", true},
		{"multibyte counted as characters", "пользов", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidUsername)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, got)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"a@b.c", false},
		{"john.doe@example.com", false},
		{"ab.com", true},
		{"a@bcom", true},
		{"@b.c", true},
		{"a@.c", true},
		{"a@b.", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got, err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, got)
		})
	}
}

func TestValidateQuantity(t *testing.T) {
	require.NoError(t, ValidateQuantity(1))
	require.ErrorIs(t, ValidateQuantity(0), ErrInvalidQuantity)
	require.ErrorIs(t, ValidateQuantity(-3), ErrInvalidQuantity)
}
