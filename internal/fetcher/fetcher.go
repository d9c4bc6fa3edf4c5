// Package fetcher downloads a single Twitter/X video with yt-dlp and reads
// back the post metadata the downloader prints after the file is written.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/embebot/embebot/internal/config"
	"github.com/embebot/embebot/internal/domain"
)

// metaSep is the field separator yt-dlp is asked to print between metadata
// fields. U+241F is vanishingly unlikely to appear in tweet text.
const metaSep = "␟"

// metaFields is the number of fields in the --print template.
const metaFields = 7

var tweetIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:twitter\.com|x\.com)/\w+/status/(\d+)`),
	regexp.MustCompile(`(?:twitter\.com|x\.com)/i/(?:web/)?status/(\d+)`),
}

// ExtractTweetID pulls the numeric post ID out of a Twitter/X status URL.
func ExtractTweetID(url string) (domain.TweetID, error) {
	for _, pat := range tweetIDPatterns {
		if m := pat.FindStringSubmatch(url); m != nil {
			return domain.TweetID(m[1]), nil
		}
	}
	return "", fmt.Errorf("%w: no se pudo extraer el ID del tweet de la URL", domain.ErrNoTweetID)
}

// Fetcher runs yt-dlp to download one video into a caller-owned directory.
type Fetcher struct {
	cfg    config.FetchConfig
	logger *slog.Logger
}

// New creates a Fetcher.
func New(cfg config.FetchConfig, logger *slog.Logger) *Fetcher {
	return &Fetcher{cfg: cfg, logger: logger}
}

// Fetch downloads the video behind url into outDir and returns the file path
// plus the metadata yt-dlp reported. outDir must exist and be writable. The
// subprocess is killed if it outlives the configured timeout. All failures
// come back as error values wrapping the domain sentinels.
func (f *Fetcher) Fetch(ctx context.Context, url, outDir string) (*domain.Video, error) {
	tweetID, err := ExtractTweetID(url)
	if err != nil {
		return nil, domain.NewFetchError("extract tweet ID", url, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	// after_video: the metadata line is only printed once the media file has
	// been fully written, so a complete line plus exit code 0 means the
	// artifact should be on disk.
	printTemplate := "after_video:" + strings.Join([]string{
		"%(url)s", "%(title)s", "%(thumbnail)s", "%(uploader)s",
		"%(uploader_id)s", "%(description)s", "%(upload_date)s",
	}, metaSep)
	outTemplate := filepath.Join(outDir, tweetID.String()+".%(ext)s")

	cmd := exec.CommandContext(ctx, f.cfg.Binary,
		"-f", f.cfg.Format,
		"--no-playlist",
		"--print", printTemplate,
		"-o", outTemplate,
		url,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// On timeout the context kills yt-dlp, but a forked child could keep the
	// output pipes open. WaitDelay bounds how long Wait blocks on them.
	cmd.WaitDelay = 5 * time.Second

	f.logger.Info("running yt-dlp",
		"tweet_id", tweetID,
		"binary", f.cfg.Binary,
		"timeout", f.cfg.Timeout,
	)

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		f.logger.Error("yt-dlp timed out", "tweet_id", tweetID, "timeout", f.cfg.Timeout)
		return nil, domain.NewFetchError("download", url,
			fmt.Errorf("%w: timeout (%s) al descargar video de Twitter", domain.ErrDownloadTimeout, f.cfg.Timeout))
	}

	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		stderrText := strings.TrimSpace(stderr.String())
		f.logger.Error("yt-dlp failed",
			"tweet_id", tweetID,
			"exit_code", exitCode,
			"stderr", truncate(stderrText, 500),
		)
		return nil, domain.NewFetchError("download", url,
			fmt.Errorf("%w: yt-dlp falló con código %d: %s", domain.ErrDownloaderFailed, exitCode, stderrText))
	}

	video, err := parseMetadata(stdout.String())
	if err != nil {
		return nil, domain.NewFetchError("parse metadata", url, err)
	}

	// The extension depends on the negotiated format, so glob for the ID stem.
	matches, err := filepath.Glob(filepath.Join(outDir, tweetID.String()+".*"))
	if err != nil {
		return nil, domain.NewFetchError("locate file", url, err)
	}
	if len(matches) == 0 {
		f.logger.Error("downloaded artifact missing", "tweet_id", tweetID, "dir", outDir)
		return nil, domain.NewFetchError("locate file", url,
			fmt.Errorf("%w: no se encontró archivo de video descargado en %s", domain.ErrFileMissing, outDir))
	}
	video.Path = matches[0]

	f.logger.Info("video downloaded",
		"tweet_id", tweetID,
		"path", video.Path,
		"uploader", video.Author,
	)
	return video, nil
}

// parseMetadata splits the single --print line into its 7 fields. The first
// field is the direct media URL, which the relay does not need.
func parseMetadata(out string) (*domain.Video, error) {
	parts := strings.Split(strings.TrimSpace(out), metaSep)
	if len(parts) < metaFields {
		return nil, fmt.Errorf("%w: salida de yt-dlp inesperada (esperaba %d campos, obtuvo %d): %s",
			domain.ErrBadMetadata, metaFields, len(parts), truncate(out, 200))
	}
	return &domain.Video{
		Title:       strings.TrimSpace(parts[1]),
		Thumbnail:   strings.TrimSpace(parts[2]),
		Author:      strings.TrimSpace(parts[3]),
		Handle:      strings.TrimSpace(parts[4]),
		Description: strings.TrimSpace(parts[5]),
		UploadDate:  strings.TrimSpace(parts[6]),
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
