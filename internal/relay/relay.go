// Package relay drives one /vx invocation end to end: fetch the video into a
// scratch directory, validate it, upload it with a summary, clean up.
package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"

	"github.com/embebot/embebot/internal/config"
	"github.com/embebot/embebot/internal/domain"
	"github.com/embebot/embebot/internal/rewrite"
)

// Fetcher downloads one video into outDir and reports its metadata.
type Fetcher interface {
	Fetch(ctx context.Context, url, outDir string) (*domain.Video, error)
}

// Responder is the slice of the Discord interaction the relay needs. The bot
// layer implements it; tests use a recording fake.
type Responder interface {
	// Defer acknowledges the interaction so the platform's response window
	// does not expire while the download runs.
	Defer(ctx context.Context) error
	// Ephemeral sends a message visible only to the invoking user.
	Ephemeral(ctx context.Context, msg string) error
	// SendVideo publishes the media as an attachment with its summary.
	SendVideo(ctx context.Context, sum domain.Summary, filename string, media io.Reader) error
}

// Service is the relay orchestrator.
type Service struct {
	fetcher Fetcher
	cfg     config.RelayConfig
	logger  *slog.Logger
	stats   *Stats
}

// New creates a relay Service.
func New(fetcher Fetcher, cfg config.RelayConfig, logger *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
		stats:   &Stats{},
	}
}

// Stats returns the service's counters.
func (s *Service) Stats() *Stats {
	return s.stats
}

// IsSupportedURL reports whether url belongs to Twitter/X.
func IsSupportedURL(url string) bool {
	return strings.Contains(url, "twitter.com") || strings.Contains(url, "x.com")
}

// Relay runs the whole pipeline for one invocation. Every failure is reported
// to the invoker as a single ephemeral message and nothing escapes to the
// caller, so one bad request can never take the bot down.
func (s *Service) Relay(ctx context.Context, url string, resp Responder) {
	log := s.logger.With("relay_id", uuid.New().String(), "url", url)

	defer func() {
		if r := recover(); r != nil {
			s.stats.failed.Add(1)
			log.Error("panic while relaying video",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			s.notify(ctx, resp, log, "❌ Error inesperado al procesar el video. Revisá los logs para más detalles.")
		}
	}()

	if !IsSupportedURL(url) {
		s.stats.rejected.Add(1)
		log.Warn("rejected unsupported URL")
		s.notify(ctx, resp, log, "URL tan invalida como vos.")
		return
	}

	// The download can exceed Discord's interaction window, so acknowledge
	// first and deliver the result as a follow-up.
	if err := resp.Defer(ctx); err != nil {
		s.stats.failed.Add(1)
		log.Error("failed to defer response", "error", err)
		return
	}

	workDir, err := os.MkdirTemp(s.cfg.TempDir, "embebot-*")
	if err != nil {
		s.stats.failed.Add(1)
		log.Error("failed to create work dir", "error", err)
		s.notify(ctx, resp, log, "❌ Error inesperado al procesar el video. Revisá los logs para más detalles.")
		return
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Error("failed to remove work dir", "dir", workDir, "error", err)
			return
		}
		log.Info("work dir removed", "dir", workDir)
	}()

	video, err := s.fetcher.Fetch(ctx, url, workDir)
	if err != nil {
		s.stats.failed.Add(1)
		log.Error("fetch failed", "error", err)
		s.notify(ctx, resp, log, fmt.Sprintf("❌ **Error al descargar video:**\n```\n%s\n```",
			truncateRunes(err.Error(), s.cfg.MaxErrorLength)))
		return
	}

	info, err := os.Stat(video.Path)
	if err != nil {
		s.stats.failed.Add(1)
		log.Error("failed to stat downloaded file", "path", video.Path, "error", err)
		s.notify(ctx, resp, log, "❌ Error inesperado al procesar el video. Revisá los logs para más detalles.")
		return
	}

	size := info.Size()
	sizeMB := float64(size) / (1024 * 1024)
	if size > s.cfg.MaxUploadBytes {
		s.stats.failed.Add(1)
		log.Warn("video exceeds upload ceiling", "size_mb", sizeMB)
		s.notify(ctx, resp, log, fmt.Sprintf(
			"❌ El video es demasiado grande (%.1fMB). Discord tiene un límite de %dMB.",
			sizeMB, s.cfg.MaxUploadBytes/(1024*1024)))
		return
	}

	sum := s.buildSummary(video, size)

	f, err := os.Open(video.Path)
	if err != nil {
		s.stats.failed.Add(1)
		log.Error("failed to open downloaded file", "path", video.Path, "error", err)
		s.notify(ctx, resp, log, "❌ Error inesperado al procesar el video. Revisá los logs para más detalles.")
		return
	}
	defer f.Close()

	if err := resp.SendVideo(ctx, sum, filepath.Base(video.Path), f); err != nil {
		s.stats.failed.Add(1)
		log.Error("upload failed", "error", err)
		s.notify(ctx, resp, log, fmt.Sprintf("❌ **Error al subir el video a Discord:**\n```\n%s\n```",
			truncateRunes(err.Error(), s.cfg.MaxErrorLength)))
		return
	}

	s.stats.relayed.Add(1)
	log.Info("video relayed",
		"uploader", video.Author,
		"handle", video.Handle,
		"size_mb", sizeMB,
	)
}

// buildSummary shapes the downloaded metadata into the user-visible digest.
func (s *Service) buildSummary(v *domain.Video, size int64) domain.Summary {
	name := v.Author
	if name == "" {
		name = "Desconocido"
	}

	desc := truncateRunes(v.Description, s.cfg.MaxDescription)
	if desc != "" {
		// Applied exactly once; a second pass would double-wrap the URLs.
		desc = rewrite.SuppressPreviews(desc)
	} else {
		desc = "Video de X"
	}

	var avatar string
	if v.Handle != "" {
		avatar = fmt.Sprintf(s.cfg.AvatarTemplate, v.Handle)
	}

	return domain.Summary{
		Description: desc,
		AuthorName:  name,
		Handle:      v.Handle,
		AvatarURL:   avatar,
		Footer:      fmt.Sprintf("Video • %.1fMB", float64(size)/(1024*1024)),
		SizeBytes:   size,
	}
}

// notify sends one ephemeral message, logging instead of failing when even
// that cannot be delivered.
func (s *Service) notify(ctx context.Context, resp Responder, log *slog.Logger, msg string) {
	if err := resp.Ephemeral(ctx, msg); err != nil {
		log.Error("failed to send error notice", "error", err)
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
