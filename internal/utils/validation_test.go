package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "list.csv")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0644))

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "existing folder", input: dir},
		{name: "empty", input: "", wantErr: true},
		{name: "missing", input: filepath.Join(dir, "nope"), wantErr: true},
		{name: "file instead of folder", input: file, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputDir(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "input", vErr.Field)
		})
	}
}

func TestValidateTargetFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "playlists.db")
	require.NoError(t, os.WriteFile(target, nil, 0644))

	assert.NoError(t, ValidateTargetFile(target))
	assert.Error(t, ValidateTargetFile(""))
	assert.Error(t, ValidateTargetFile(dir))

	err := ValidateTargetFile(filepath.Join(dir, "missing.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidateFileExtension(t *testing.T) {
	assert.NoError(t, ValidateFileExtension("Liked.CSV", []string{".csv"}))
	assert.Error(t, ValidateFileExtension("notes.txt", []string{".csv"}))
	assert.Error(t, ValidateFileExtension("README", []string{".csv"}))
}
