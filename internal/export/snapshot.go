// Package export writes snapshot artifacts for a capture session: a PNG
// trail plot rendered with gonum/plot and an interactive HTML chart rendered
// with go-echarts.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/irview/internal/fsutil"
	"github.com/banshee-data/irview/internal/scene"
)

// Session identifies one run of the visualizer. The ID names every artifact
// the run produces and appears in the status bar and shutdown summary.
type Session struct {
	ID        string
	StartedAt time.Time
	Dir       string // artifact output directory

	fs  fsutil.FS
	seq int // snapshot counter within the session
}

// NewSession creates a session writing artifacts under dir.
func NewSession(dir string) *Session {
	return NewSessionFS(dir, fsutil.DiskFS{})
}

// NewSessionFS is NewSession with an explicit filesystem, for tests.
func NewSessionFS(dir string, fs fsutil.FS) *Session {
	return &Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Dir:       dir,
		fs:        fs,
	}
}

// Short returns the leading segment of the session ID, compact enough for
// the status bar and file names.
func (s *Session) Short() string {
	if i := strings.IndexByte(s.ID, '-'); i > 0 {
		return s.ID[:i]
	}
	return s.ID
}

// WriteSnapshot renders the scene's trails to a PNG and an HTML artifact,
// creating the output directory on first use. It returns the paths written.
// Failures leave the scene untouched; the caller logs and carries on.
func (s *Session) WriteSnapshot(sc *scene.Scene) (pngPath, htmlPath string, err error) {
	if err := s.fs.MkdirAll(s.Dir, 0755); err != nil {
		return "", "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// The sequence number advances only once both artifacts are written.
	base := fmt.Sprintf("ir_%s_%03d", s.Short(), s.seq+1)
	pngPath = filepath.Join(s.Dir, base+".png")
	htmlPath = filepath.Join(s.Dir, base+".html")

	if err := writeTrailPNG(sc, s, pngPath); err != nil {
		return "", "", fmt.Errorf("write %s: %w", pngPath, err)
	}
	if err := writeTrailHTML(sc, s, htmlPath); err != nil {
		return "", "", fmt.Errorf("write %s: %w", htmlPath, err)
	}
	s.seq++
	return pngPath, htmlPath, nil
}

// Snapshots returns how many snapshots this session has written.
func (s *Session) Snapshots() int { return s.seq }
