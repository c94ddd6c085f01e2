package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/motion"
	"github.com/claude/repcoach/internal/pose"
	"github.com/claude/repcoach/internal/replay"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Single-user deployment, same convention as the row types.
const defaultUserID = 1

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads optional start/end query params (RFC 3339 or
// YYYY-MM-DD), defaulting to the last 30 days.
func parseTimeRange(r *http.Request) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	parse := func(s string) (time.Time, error) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", s)
	}

	if v := r.URL.Query().Get("start"); v != "" {
		t, err := parse(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := parse(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
	}
	return start, end, nil
}

type startSessionRequest struct {
	Exercise string `json:"exercise"`
}

type startSessionResponse struct {
	ID        uuid.UUID           `json:"id"`
	Exercise  models.ExerciseKind `json:"exercise"`
	StartedAt time.Time           `json:"started_at"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	exercise, known := models.ParseExercise(req.Exercise)
	if !known {
		s.log.Warn("unknown exercise name, tracking as custom", "name", req.Exercise)
	}

	ls := s.live.start(exercise, s.trackerCfg, time.Now())
	s.dispatcher.Bump()
	sessionsStarted.WithLabelValues(string(exercise)).Inc()
	liveSessions.Set(float64(s.live.count()))

	s.log.Info("session started", "id", ls.id, "exercise", exercise)
	writeJSON(w, http.StatusCreated, startSessionResponse{
		ID:        ls.id,
		Exercise:  ls.exercise,
		StartedAt: ls.startedAt,
	})
}

type frameRequest struct {
	Landmarks pose.Frame `json:"landmarks"`
	// T is the capture timestamp; empty means "now". Clients replaying
	// buffered frames must set it so rep debouncing uses capture time.
	T *time.Time `json:"t,omitempty"`
}

type frameResponse struct {
	motion.Observation
	RepCompleted bool              `json:"rep_completed"`
	Feedback     *feedbackResponse `json:"feedback,omitempty"`
}

type feedbackResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	AudioCue string `json:"audio_cue,omitempty"`
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	ls, ok := s.liveFromRequest(w, r)
	if !ok {
		return
	}

	var req frameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	at := time.Now()
	if req.T != nil {
		at = *req.T
	}

	ls.mu.Lock()
	obs, ev := ls.tracker.Observe(req.Landmarks, at)
	ls.lastFrameAt = at
	if ev != nil {
		ls.reps = append(ls.reps, repRow(ls, *ev))
	}
	fb := ls.lastFeedback
	ls.mu.Unlock()

	framesProcessed.WithLabelValues(string(ls.exercise)).Inc()

	if ev != nil {
		repsCounted.WithLabelValues(string(ls.exercise)).Inc()
		// The evaluation outlives this request; don't tie it to r.Context().
		s.dispatcher.Dispatch(context.WithoutCancel(r.Context()), *ev, ls.applyFeedback)
		s.log.Info("rep counted", "session", ls.id, "rep", ev.Count)
	}

	resp := frameResponse{Observation: obs, RepCompleted: ev != nil}
	if fb != nil {
		resp.Feedback = &feedbackResponse{Status: fb.Status, Message: fb.Message, AudioCue: fb.AudioCue}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	ls, ok := s.removeFromRequest(w, r)
	if !ok {
		return
	}
	s.dispatcher.Bump()
	liveSessions.Set(float64(s.live.count()))

	ls.mu.Lock()
	endedAt := ls.lastFrameAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}
	row := models.SessionRow{
		ID:          ls.id,
		UserID:      defaultUserID,
		Exercise:    ls.exercise,
		StartedAt:   ls.startedAt,
		EndedAt:     endedAt,
		DurationSec: endedAt.Sub(ls.startedAt).Seconds(),
		TotalReps:   ls.tracker.Reps(),
		Source:      models.SessionSourceLive,
	}
	reps := ls.reps
	ls.mu.Unlock()

	if _, err := s.db.InsertSession(r.Context(), row); err != nil {
		s.log.Error("persisting session failed", "id", ls.id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if _, err := s.db.InsertReps(r.Context(), reps); err != nil {
		s.log.Error("persisting reps failed", "id", ls.id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.log.Info("session finished", "id", ls.id, "reps", row.TotalReps)
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	ls, ok := s.removeFromRequest(w, r)
	if !ok {
		return
	}
	// Bump first so any in-flight feedback for this session is dropped.
	s.dispatcher.Bump()
	liveSessions.Set(float64(s.live.count()))

	ls.mu.Lock()
	ls.tracker.Reset()
	ls.mu.Unlock()

	s.log.Info("session abandoned", "id", ls.id)
	w.WriteHeader(http.StatusNoContent)
}

type calibrationRequest struct {
	Landmarks pose.Frame `json:"landmarks"`
}

func (s *Server) handleCalibration(w http.ResponseWriter, r *http.Request) {
	var req calibrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	score := motion.PositionScore(req.Landmarks, s.tracking.VisibilityThreshold)
	writeJSON(w, http.StatusOK, map[string]int{"score": score})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.AllExercises)
}

func (s *Server) handleQuerySessions(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sessions, err := s.db.QuerySessions(r.Context(), start, end, defaultUserID, r.URL.Query().Get("exercise"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	detail, err := s.db.GetSession(r.Context(), id, defaultUserID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context(), defaultUserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRepStats(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	stats, err := s.db.GetRepStats(r.Context(), exercise, start, end, defaultUserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleDailyReps(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	daily, err := s.db.GetDailyReps(r.Context(), start, end, defaultUserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, daily)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var payload replay.ImportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.importSession(r, payload)
	if err != nil {
		s.log.Error("import error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) importSession(r *http.Request, payload replay.ImportPayload) (*replay.ImportResult, error) {
	session := payload.Session
	session.UserID = defaultUserID
	session.Source = models.SessionSourceReplay

	inserted, err := s.db.InsertSession(r.Context(), session)
	if err != nil {
		return nil, err
	}

	reps := payload.Reps
	for i := range reps {
		reps[i].UserID = defaultUserID
		reps[i].SessionID = session.ID
	}
	repCount, err := s.db.InsertReps(r.Context(), reps)
	if err != nil {
		return nil, err
	}

	return &replay.ImportResult{
		SessionInserted: inserted,
		RepsInserted:    int(repCount),
	}, nil
}

// liveFromRequest resolves the {id} URL param to a live session.
func (s *Server) liveFromRequest(w http.ResponseWriter, r *http.Request) (*liveSession, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return nil, false
	}
	ls, err := s.live.get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return nil, false
	}
	return ls, true
}

// removeFromRequest resolves and removes the {id} live session in one step.
func (s *Server) removeFromRequest(w http.ResponseWriter, r *http.Request) (*liveSession, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return nil, false
	}
	ls, err := s.live.remove(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return nil, false
	}
	return ls, true
}

// repRow converts a rep event into its storage row.
func repRow(ls *liveSession, ev motion.RepEvent) models.RepRow {
	return models.RepRow{
		ID:          uuid.New(),
		SessionID:   ls.id,
		UserID:      defaultUserID,
		RepNumber:   ev.Count,
		CompletedAt: ev.At,
		LeftKnee:    ev.Angles.LeftKnee,
		RightKnee:   ev.Angles.RightKnee,
		LeftHip:     ev.Angles.LeftHip,
		RightHip:    ev.Angles.RightHip,
		LeftElbow:   ev.Angles.LeftElbow,
		RightElbow:  ev.Angles.RightElbow,
		BackAngle:   ev.Angles.Back,
	}
}
