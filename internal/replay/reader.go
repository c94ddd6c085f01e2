// Package replay runs recorded landmark streams through the motion pipeline
// offline and imports the resulting sessions into the server.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/claude/repcoach/internal/models"
)

// Recording is a parsed JSONL landmark recording: a header line followed by
// one frame per line.
type Recording struct {
	Header models.RecordingHeader
	Frames []models.RecordedFrame
}

// ReadRecording parses the JSONL recording at path. The first line must be
// the header; blank lines between frames are tolerated.
func ReadRecording(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Landmark frames run a few KB each; allow up to 1 MB per line.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading header of %s: %w", path, err)
		}
		return nil, fmt.Errorf("recording %s is empty", path)
	}

	var rec Recording
	if err := json.Unmarshal(scanner.Bytes(), &rec.Header); err != nil {
		return nil, fmt.Errorf("parsing header of %s: %w", path, err)
	}
	if rec.Header.RecordedAt.IsZero() {
		return nil, fmt.Errorf("recording %s has no recorded_at timestamp", path)
	}

	line := 1
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var frame models.RecordedFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", path, line, err)
		}
		rec.Frames = append(rec.Frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &rec, nil
}
