// Package csvids reads video identifiers from playlist export files.
//
// Export files are treated as plain comma separated lines rather than
// RFC 4180 CSV: only the text before the first comma matters, quoting is
// not interpreted and rows may have any number of columns.
package csvids

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnzdotmx/ytpappend/internal/utils"
)

const utf8BOM = "\ufeff"

// ExtractIDs returns the first-column identifiers of the file at path in
// file order. Blank lines and lines with an empty first field are skipped,
// duplicates are kept.
func ExtractIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			utils.LogWarning("Failed to close file: %v", err)
		}
	}()

	ids, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	utils.LogDebug("Read %d video IDs from %s", len(ids), path)
	return ids, nil
}

// Parse extracts identifiers from r, see ExtractIDs. Lines end at "\r\n",
// "\n" or a lone "\r" and have no length limit.
func Parse(r io.Reader) ([]string, error) {
	var ids []string

	reader := bufio.NewReader(r)
	first := true
	for {
		line, err := readLine(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
		}

		field, _, _ := strings.Cut(line, ",")
		if field = strings.TrimSpace(field); field != "" {
			ids = append(ids, field)
		}

		if errors.Is(err, io.EOF) {
			return ids, nil
		}
	}
}

// readLine returns the next line without its terminator. It returns io.EOF
// together with the last, unterminated line.
func readLine(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			return sb.String(), err
		}
		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			if next, err := r.Peek(1); err == nil && next[0] == '\n' {
				if _, err := r.ReadByte(); err != nil {
					return sb.String(), err
				}
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

// Distinct returns ids without repeats, keeping first occurrences in order.
func Distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
