package importer

import "errors"

var (
	// ErrMissingAPIKey indicates that no API credential was provided.
	ErrMissingAPIKey = errors.New("missing YouTube API credential")
	// ErrMissingInputDir indicates that the export folder is unset or unusable.
	ErrMissingInputDir = errors.New("missing input folder")
	// ErrNoCSVFiles indicates that the input folder holds no .csv files.
	ErrNoCSVFiles = errors.New("no .csv files found")
	// ErrMissingTarget indicates that no usable playlist store was selected.
	ErrMissingTarget = errors.New("missing target playlist file")
	// ErrNoVideoIDs indicates a file without a single valid video ID.
	ErrNoVideoIDs = errors.New("no valid video IDs")
	// ErrNoVideosFound indicates that none of a file's IDs resolved to a video.
	ErrNoVideosFound = errors.New("no videos found")
)
