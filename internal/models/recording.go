package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/repcoach/internal/pose"
)

// RecordingTime handles the timestamp formats found in landmark recordings:
// RFC 3339 or the capture app's "2006-01-02 15:04:05 -0700".
type RecordingTime struct {
	time.Time
}

const recordingTimeLayout = "2006-01-02 15:04:05 -0700"

func (t *RecordingTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.Parse(s)
}

func (t RecordingTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}

// Parse parses a recording timestamp, trying RFC 3339 first.
func (t *RecordingTime) Parse(s string) error {
	parsed, err := time.Parse(time.RFC3339, s)
	if err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err2 := time.Parse(recordingTimeLayout, s)
	if err2 == nil {
		t.Time = parsed
		return nil
	}
	return fmt.Errorf("cannot parse recording time %q: %w", s, err)
}

// RecordingHeader is the first line of a JSONL landmark recording.
type RecordingHeader struct {
	Exercise   string        `json:"exercise"`
	RecordedAt RecordingTime `json:"recorded_at"`
	FPS        float64       `json:"fps,omitempty"`
	Source     string        `json:"source,omitempty"`
}

// RecordedFrame is one subsequent line: the frame's offset from the
// recording start in milliseconds, plus the full landmark list.
type RecordedFrame struct {
	OffsetMS  float64    `json:"t"`
	Landmarks pose.Frame `json:"landmarks"`
}

// At returns the absolute capture time of the frame.
func (f RecordedFrame) At(start time.Time) time.Time {
	return start.Add(time.Duration(f.OffsetMS * float64(time.Millisecond)))
}
