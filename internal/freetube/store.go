package freetube

import (
	"fmt"

	"github.com/gnzdotmx/ytpappend/internal/utils"
)

// Store appends playlist records to a playlist store file. The first record
// of a Store is written as is, every later one is preceded by a newline.
// The file is opened and closed for each record and is not locked.
type Store struct {
	path    string
	written int
}

// NewStore creates a Store appending to path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the target file
func (s *Store) Path() string {
	return s.path
}

// Written returns how many records were appended so far
func (s *Store) Written() int {
	return s.written
}

// Append serializes record and appends it to the store file
func (s *Store) Append(record PlaylistRecord) error {
	data, err := Marshal(record)
	if err != nil {
		return err
	}

	text := string(data)
	if s.written > 0 {
		text = "\n" + text
	}

	if err := utils.AppendTextFile(s.path, text); err != nil {
		return fmt.Errorf("failed to append playlist %s: %w", record.PlaylistName, err)
	}

	s.written++
	return nil
}
