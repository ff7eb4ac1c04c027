package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateInputDir checks that dir is set and points to an existing directory
func ValidateInputDir(dir string) error {
	if dir == "" {
		return &ValidationError{
			Field:   "input",
			Message: "input folder is required",
		}
	}

	fileInfo, err := os.Stat(dir)
	if err != nil {
		return &ValidationError{
			Field:   "input",
			Message: fmt.Sprintf("input folder does not exist: %s", dir),
			Err:     err,
		}
	}

	if !fileInfo.IsDir() {
		return &ValidationError{
			Field:   "input",
			Message: fmt.Sprintf("input must be a folder, not a file: %s", dir),
		}
	}

	return nil
}

// ValidateTargetFile checks that the target store is set and is an existing
// regular file.
func ValidateTargetFile(target string) error {
	if target == "" {
		return &ValidationError{
			Field:   "target",
			Message: "a FreeTube playlist file to append to is required",
		}
	}

	fileInfo, err := os.Stat(target)
	if err != nil {
		return &ValidationError{
			Field:   "target",
			Message: fmt.Sprintf("target file does not exist: %s", target),
			Err:     err,
		}
	}

	if fileInfo.IsDir() {
		return &ValidationError{
			Field:   "target",
			Message: fmt.Sprintf("target must be a file, not a directory: %s", target),
		}
	}

	return nil
}

// ValidateFileExtension checks if a file has one of the allowed extensions
func ValidateFileExtension(filePath string, allowedExts []string) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, allowedExt := range allowedExts {
		if ext == allowedExt {
			return nil
		}
	}
	return &ValidationError{
		Field:   "extension",
		Message: fmt.Sprintf("file extension %s not allowed. Allowed extensions: %v", ext, allowedExts),
	}
}
