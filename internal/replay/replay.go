package replay

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/repcoach/internal/motion"
)

// Stats tracks import progress.
type Stats struct {
	FilesTotal    int
	FilesImported int
	FilesSkipped  int
	FilesErrored  int

	SessionsSent int
	RepsSent     int
	RepsCounted  int
}

// Runner walks a directory of JSONL landmark recordings, runs each through
// the motion pipeline, and imports the resulting sessions.
type Runner struct {
	client *Client
	state  *StateDB
	root   string
	cfg    motion.Config
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Runner rooted at dir.
func New(client *Client, state *StateDB, dir string, cfg motion.Config, dryRun bool, log *slog.Logger) *Runner {
	return &Runner{
		client: client,
		state:  state,
		root:   dir,
		cfg:    cfg,
		dryRun: dryRun,
		log:    log,
	}
}

// Run executes the analyze-and-import pipeline over every recording under
// the root directory.
func (r *Runner) Run() (*Stats, error) {
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".jsonl") {
			return nil
		}
		r.processFile(path)
		return nil
	})
	if err != nil {
		return &r.stats, fmt.Errorf("walking %s: %w", r.root, err)
	}
	return &r.stats, nil
}

// processFile analyzes and imports a single recording. Per-file failures are
// logged and counted, not fatal: one corrupt recording should not stop the
// rest of the directory.
func (r *Runner) processFile(path string) {
	r.stats.FilesTotal++

	relPath, _ := filepath.Rel(r.root, path)
	info, err := os.Stat(path)
	if err != nil {
		r.log.Warn("stat failed", "file", path, "error", err)
		r.stats.FilesErrored++
		return
	}

	hash, err := HashFile(path)
	if err != nil {
		r.log.Warn("hash failed", "file", path, "error", err)
		r.stats.FilesErrored++
		return
	}

	imported, err := r.state.IsImported(relPath, info.Size(), hash)
	if err != nil {
		r.log.Warn("state check failed", "file", path, "error", err)
		r.stats.FilesErrored++
		return
	}
	if imported {
		r.stats.FilesSkipped++
		return
	}

	rec, err := ReadRecording(path)
	if err != nil {
		r.log.Warn("parse failed", "file", path, "error", err)
		r.stats.FilesErrored++
		return
	}

	payload, err := Analyze(rec, r.cfg)
	if err != nil {
		r.log.Warn("analysis failed", "file", path, "error", err)
		r.stats.FilesErrored++
		return
	}
	r.stats.RepsCounted += payload.Session.TotalReps

	if r.dryRun {
		r.log.Info("dry-run: would import",
			"file", relPath,
			"exercise", payload.Session.Exercise,
			"frames", len(rec.Frames),
			"reps", payload.Session.TotalReps,
		)
		return
	}

	result, err := r.client.SendSession(*payload)
	if err != nil {
		r.log.Warn("import failed", "file", path, "error", err)
		r.stats.FilesErrored++
		return
	}

	if err := r.state.MarkImported(relPath, info.Size(), hash); err != nil {
		r.log.Warn("failed to mark imported", "file", relPath, "error", err)
	}

	r.stats.FilesImported++
	if result.SessionInserted {
		r.stats.SessionsSent++
	}
	r.stats.RepsSent += result.RepsInserted

	r.log.Info("imported recording",
		"file", relPath,
		"exercise", payload.Session.Exercise,
		"reps", payload.Session.TotalReps,
	)
}
