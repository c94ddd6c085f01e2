package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestRecordingTimeRFC3339 verifies the primary timestamp format parses.
func TestRecordingTimeRFC3339(t *testing.T) {
	var rt RecordingTime
	if err := rt.Parse("2026-03-14T09:30:00Z"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.Hour() != 9 || rt.Minute() != 30 {
		t.Errorf("parsed = %v, want 09:30", rt.Time)
	}
}

// TestRecordingTimeLegacyLayout verifies the capture app's space-separated
// layout is accepted as a fallback.
func TestRecordingTimeLegacyLayout(t *testing.T) {
	var rt RecordingTime
	if err := rt.Parse("2026-03-14 09:30:00 +0100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.UTC().Hour() != 8 {
		t.Errorf("parsed UTC hour = %d, want 8", rt.UTC().Hour())
	}
}

// TestRecordingTimeInvalid verifies unparseable timestamps error clearly.
func TestRecordingTimeInvalid(t *testing.T) {
	var rt RecordingTime
	if err := rt.Parse("last tuesday"); err == nil {
		t.Fatal("expected error for garbage timestamp")
	}
}

// TestRecordingHeaderRoundTrip verifies the JSONL header line decodes with
// its timestamp and exercise name intact.
func TestRecordingHeaderRoundTrip(t *testing.T) {
	line := `{"exercise":"squat","recorded_at":"2026-03-14T09:00:00Z","fps":30,"source":"ios-app"}`
	var h RecordingHeader
	if err := json.Unmarshal([]byte(line), &h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Exercise != "squat" {
		t.Errorf("exercise = %q, want squat", h.Exercise)
	}
	if h.FPS != 30 {
		t.Errorf("fps = %v, want 30", h.FPS)
	}
	if h.RecordedAt.IsZero() {
		t.Error("recorded_at should be set")
	}
}

// TestRecordedFrameAt verifies frame offsets resolve against the recording
// start time.
func TestRecordedFrameAt(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	f := RecordedFrame{OffsetMS: 1500}
	got := f.At(start)
	if want := start.Add(1500 * time.Millisecond); !got.Equal(want) {
		t.Errorf("At = %v, want %v", got, want)
	}
}
