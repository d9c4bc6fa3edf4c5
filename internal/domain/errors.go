package domain

import "errors"

// Domain errors.
var (
	// ErrUnsupportedURL is returned when a URL does not belong to a supported service.
	ErrUnsupportedURL = errors.New("unsupported URL")

	// ErrNoTweetID is returned when no post ID can be extracted from a tweet URL.
	ErrNoTweetID = errors.New("no tweet ID in URL")

	// ErrDownloadTimeout is returned when yt-dlp does not finish in time.
	ErrDownloadTimeout = errors.New("download timed out")

	// ErrDownloaderFailed is returned when yt-dlp exits nonzero.
	ErrDownloaderFailed = errors.New("downloader failed")

	// ErrBadMetadata is returned when the yt-dlp metadata line cannot be parsed.
	ErrBadMetadata = errors.New("malformed downloader output")

	// ErrFileMissing is returned when the downloaded artifact is not on disk.
	ErrFileMissing = errors.New("downloaded file missing")

	// ErrTooLarge is returned when the video exceeds the upload ceiling.
	ErrTooLarge = errors.New("video exceeds upload limit")
)

// FetchError wraps an error with the fetch operation that produced it.
type FetchError struct {
	Op  string
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e.URL != "" {
		return e.Op + " [" + e.URL + "]: " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(op, url string, err error) *FetchError {
	return &FetchError{Op: op, URL: url, Err: err}
}
