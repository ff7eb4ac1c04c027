package importer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type reportDoc struct {
	Target     string      `yaml:"target"`
	Backup     string      `yaml:"backup,omitempty"`
	StartedAt  time.Time   `yaml:"startedAt"`
	FinishedAt time.Time   `yaml:"finishedAt"`
	Appended   int         `yaml:"appended"`
	Skipped    int         `yaml:"skipped"`
	Failed     int         `yaml:"failed"`
	Files      []reportRow `yaml:"files"`
}

type reportRow struct {
	Playlist  string `yaml:"playlist"`
	Source    string `yaml:"source"`
	Status    Status `yaml:"status"`
	Requested int    `yaml:"requested"`
	Videos    int    `yaml:"videos"`
	Error     string `yaml:"error,omitempty"`
}

// MarshalYAML renders the report as a YAML document
func (r *Report) MarshalYAML() (interface{}, error) {
	doc := reportDoc{
		Target:     r.Target,
		Backup:     r.BackupPath,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Appended:   r.Count(StatusAppended),
		Skipped:    r.Count(StatusSkipped),
		Failed:     r.Count(StatusFailed),
		Files:      make([]reportRow, 0, len(r.Files)),
	}

	for _, f := range r.Files {
		row := reportRow{
			Playlist:  f.Playlist,
			Source:    f.Source,
			Status:    f.Status,
			Requested: f.Requested,
			Videos:    f.Videos,
		}
		if f.Err != nil {
			row.Error = f.Err.Error()
		}
		doc.Files = append(doc.Files, row)
	}

	return doc, nil
}

// WriteFile stores the report as YAML at path
func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
