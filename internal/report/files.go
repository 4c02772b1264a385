package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Kind names the report family and prefixes generated file names.
type Kind string

const (
	KindTickets Kind = "zendesk"
	KindBrand   Kind = "brand"
	KindCountry Kind = "country"
)

const (
	fileTimestamp = "2006-01-02-150405"
	fileSuffix    = ".xlsx"
	fileMarker    = "-analytics-"
	maxCollisions = 100
)

// Store owns the directory generated workbooks are written to.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create reports directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) Dir() string { return s.dir }

// Reserve atomically creates an empty file named
// <kind>-analytics-<YYYY-MM-DD-HHmmss>.xlsx, suffixing -1, -2... on collision.
func (s *Store) Reserve(kind Kind) (string, error) {
	base := fmt.Sprintf("%s%s%s", kind, fileMarker, s.now().Format(fileTimestamp))
	for i := 0; i < maxCollisions; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s-%d", base, i)
		}
		path := filepath.Join(s.dir, name+fileSuffix)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("reserve report file: %w", err)
		}
		_ = f.Close()
		return path, nil
	}
	return "", fmt.Errorf("reserve report file: too many reports named %s", base)
}

// Discard removes a reserved file whose workbook was never written.
func (s *Store) Discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("path", path).Msg("Failed to discard report file")
	}
}

// Sweep removes generated reports last modified more than ttl ago.
func (s *Store) Sweep(ttl time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-ttl)
	removed := 0
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !isReportName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

func isReportName(name string) bool {
	return strings.HasSuffix(name, fileSuffix) && strings.Contains(name, fileMarker)
}

// StartJanitor sweeps the store on schedule (cron syntax or @every).
// The caller stops the returned scheduler on shutdown.
func (s *Store) StartJanitor(schedule string, ttl time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := s.Sweep(ttl)
		if err != nil {
			log.Warn().Err(err).Str("dir", s.dir).Msg("Report sweep finished with errors")
		}
		if n > 0 {
			log.Info().Int("removed", n).Dur("ttl", ttl).Msg("Evicted expired reports")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid report sweep schedule %q: %w", schedule, err)
	}
	c.Start()
	log.Debug().Str("schedule", schedule).Dur("ttl", ttl).Msg("Report janitor started")
	return c, nil
}
