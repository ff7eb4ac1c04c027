// Package importer converts folders of playlist export files into FreeTube
// playlists appended to an existing playlist store.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnzdotmx/ytpappend/internal/csvids"
	"github.com/gnzdotmx/ytpappend/internal/fetch"
	"github.com/gnzdotmx/ytpappend/internal/freetube"
	"github.com/gnzdotmx/ytpappend/internal/history"
	"github.com/gnzdotmx/ytpappend/internal/services/youtube"
	"github.com/gnzdotmx/ytpappend/internal/utils"

	"github.com/google/uuid"
)

// Status is the outcome of one export file
type Status string

const (
	StatusAppended Status = "appended"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Recorder stores file outcomes, see history.DB
type Recorder interface {
	Record(e history.Entry) (int64, error)
}

// Options configures a Run
type Options struct {
	InputDir string // folder scanned for *.csv files
	Target   string // FreeTube playlists.db to append to

	// Credentials. APIKey wins over OAuthCredentials. Lister, when set,
	// replaces the YouTube client built from them.
	APIKey           string
	OAuthCredentials string
	TokenDir         string
	Lister           youtube.VideoLister

	RequestsPerSecond float64 // <= 0 disables rate limiting
	BatchSize         int     // 0 selects fetch.MaxBatchSize
	Backup            bool    // copy Target aside before the first append

	History  Recorder
	Progress func(done, total int)

	Now       func() time.Time
	NewItemID func() string
}

// FileResult is the outcome of one export file
type FileResult struct {
	Playlist  string
	Source    string
	Status    Status
	Requested int // identifiers read from the file
	Videos    int // videos written to the playlist
	Err       error
}

// Message is a human readable summary of the result
func (r FileResult) Message() string {
	switch r.Status {
	case StatusAppended:
		return fmt.Sprintf("%d new videos in %s.csv appended", r.Videos, r.Playlist)
	case StatusSkipped:
		return fmt.Sprintf("%s.csv skipped: %v", r.Playlist, r.Err)
	default:
		return fmt.Sprintf("error while processing %s.csv: %v", r.Playlist, r.Err)
	}
}

// Report collects the results of a run
type Report struct {
	Target     string
	BackupPath string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      []FileResult
}

// Count returns how many files ended with status
func (r *Report) Count(status Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// FindCSVFiles lists the .csv files directly inside dir in name order
func FindCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || utils.ValidateFileExtension(entry.Name(), []string{".csv"}) != nil {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// Preflight performs the run-fatal checks in order: credential, input
// folder, CSV files, target file. It returns the CSV files to process.
func Preflight(opts Options) ([]string, error) {
	if opts.Lister == nil && opts.APIKey == "" && opts.OAuthCredentials == "" {
		return nil, ErrMissingAPIKey
	}

	if err := utils.ValidateInputDir(opts.InputDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingInputDir, err)
	}

	files, err := FindCSVFiles(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingInputDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCSVFiles, opts.InputDir)
	}

	if err := utils.ValidateTargetFile(opts.Target); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingTarget, err)
	}

	return files, nil
}

// Run imports every export file of opts.InputDir into opts.Target. Fatal
// problems are returned as error before anything is written; per-file
// problems are reported in the returned Report and the run continues.
func Run(ctx context.Context, opts Options) (*Report, error) {
	files, err := Preflight(opts)
	if err != nil {
		return nil, err
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewItemID == nil {
		opts.NewItemID = uuid.NewString
	}

	lister, err := newLister(ctx, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Target:    opts.Target,
		StartedAt: opts.Now(),
	}

	if opts.Backup {
		report.BackupPath, err = utils.BackupFile(opts.Target, report.StartedAt)
		if err != nil {
			return nil, err
		}
		utils.LogInfo("Backed up %s to %s", filepath.Base(opts.Target), report.BackupPath)
	}

	r := &runner{
		opts:    opts,
		fetcher: fetch.NewFetcher(lister, fetch.NewLimiter(opts.RequestsPerSecond), opts.BatchSize),
		store:   freetube.NewStore(opts.Target),
	}

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = opts.Now()
			return report, err
		}

		result := r.processFile(ctx, file)
		report.Files = append(report.Files, result)
		r.record(result)

		if opts.Progress != nil {
			opts.Progress(i+1, len(files))
		}
	}

	report.FinishedAt = opts.Now()
	return report, nil
}

func newLister(ctx context.Context, opts Options) (youtube.VideoLister, error) {
	switch {
	case opts.Lister != nil:
		return opts.Lister, nil
	case opts.APIKey != "":
		return youtube.NewWithAPIKey(ctx, opts.APIKey)
	default:
		storage, err := utils.NewTokenStorage(opts.TokenDir)
		if err != nil {
			return nil, err
		}
		return youtube.NewWithOAuth(ctx, opts.OAuthCredentials, storage)
	}
}

type runner struct {
	opts    Options
	fetcher *fetch.Fetcher
	store   *freetube.Store
}

func (r *runner) processFile(ctx context.Context, path string) FileResult {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	result := FileResult{Playlist: name, Source: path}

	utils.LogInfo("Start processing the archive: %s.csv", name)

	ids, err := csvids.ExtractIDs(path)
	if err != nil {
		return r.fail(result, err)
	}
	result.Requested = len(ids)

	if len(ids) == 0 {
		return r.skip(result, ErrNoVideoIDs)
	}

	found, err := r.fetcher.FetchAll(ctx, csvids.Distinct(ids))
	if err != nil {
		return r.fail(result, err)
	}

	videos := make([]freetube.VideoRecord, 0, len(ids))
	for _, id := range ids {
		details, ok := found[id]
		if !ok {
			utils.LogVerbose("Video %s not returned by the API, dropped", id)
			continue
		}
		videos = append(videos, freetube.VideoRecord{
			VideoID:        details.ID,
			Title:          details.Title,
			Author:         details.ChannelTitle,
			AuthorID:       details.ChannelID,
			LengthSeconds:  fetch.ParseDuration(details.Duration),
			Published:      freetube.ParsePublished(details.PublishedAt),
			PlaylistItemID: r.opts.NewItemID(),
		})
	}

	if len(videos) == 0 {
		return r.skip(result, ErrNoVideosFound)
	}

	record := freetube.NewPlaylist(name, videos, r.opts.Now())
	if err := r.store.Append(record); err != nil {
		return r.fail(result, err)
	}

	result.Status = StatusAppended
	result.Videos = len(videos)
	utils.LogSuccess("%d new videos in %s.csv have been appended to %s",
		result.Videos, name, filepath.Base(r.store.Path()))
	return result
}

func (r *runner) skip(result FileResult, err error) FileResult {
	result.Status = StatusSkipped
	result.Err = err
	utils.LogWarning("%s", result.Message())
	return result
}

func (r *runner) fail(result FileResult, err error) FileResult {
	result.Status = StatusFailed
	result.Err = err
	utils.LogError("%s", result.Message())
	return result
}

func (r *runner) record(result FileResult) {
	if r.opts.History == nil {
		return
	}

	entry := history.Entry{
		RunAt:    r.opts.Now(),
		Playlist: result.Playlist,
		Source:   result.Source,
		Target:   r.opts.Target,
		Status:   string(result.Status),
		Videos:   result.Videos,
	}
	if result.Err != nil {
		entry.Message = result.Err.Error()
	}

	if _, err := r.opts.History.Record(entry); err != nil {
		utils.LogWarning("Failed to record import history: %v", err)
	}
}
