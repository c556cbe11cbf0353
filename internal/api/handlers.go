package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/vocabhub/internal/database"
	"github.com/example/vocabhub/internal/retention"
	"github.com/example/vocabhub/internal/study"
)

func (s *Server) handleSaveWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   int64  `json:"user_id"`
		Word     string `json:"word"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.UserID == 0 || req.Word == "" || req.Language == "" {
		writeError(w, http.StatusBadRequest, "user_id, word and language are required")
		return
	}

	word, err := s.svc.SaveWord(r.Context(), req.UserID, req.Word, req.Language)
	if err != nil {
		s.log.Error("save word failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save word")
		return
	}
	writeJSON(w, http.StatusCreated, word)
}

func (s *Server) handleMarkKnown(w http.ResponseWriter, r *http.Request) {
	wordID, ok := pathID(w, r, "wordID")
	if !ok {
		return
	}
	err := s.svc.MarkKnown(r.Context(), wordID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "word not found")
		return
	}
	if err != nil {
		s.log.Error("mark known failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to mark word known")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	wordID, ok := pathID(w, r, "wordID")
	if !ok {
		return
	}
	var req struct {
		Correct *bool `json:"correct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Correct == nil {
		writeError(w, http.StatusBadRequest, "correct is required")
		return
	}

	review, proj, err := s.svc.SubmitReview(r.Context(), wordID, *req.Correct)
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "word not found")
		return
	case errors.Is(err, study.ErrWordKnown):
		writeError(w, http.StatusConflict, "word is marked known")
		return
	case err != nil:
		s.log.Error("submit review failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to submit review")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"review":     review,
		"projection": proj,
	})
}

// handleSubmitReviewByWord records a review keyed by word and language.
// Batch entries from the bundle tiers have no saved-word id, so this is
// the path that reviews them; the first review saves the word.
func (s *Server) handleSubmitReviewByWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	var req struct {
		Word     string `json:"word"`
		Language string `json:"language"`
		Correct  *bool  `json:"correct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Correct == nil {
		writeError(w, http.StatusBadRequest, "word, language and correct are required")
		return
	}
	if req.Word == "" || req.Language == "" {
		writeError(w, http.StatusBadRequest, "word, language and correct are required")
		return
	}

	review, proj, err := s.svc.SubmitReviewByWord(r.Context(), userID, req.Word, req.Language, *req.Correct)
	switch {
	case errors.Is(err, study.ErrWordKnown):
		writeError(w, http.StatusConflict, "word is marked known")
		return
	case err != nil:
		s.log.Error("submit review failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to submit review")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"review":     review,
		"projection": proj,
	})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	count := 10
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}

	batch, err := s.svc.SelectBatch(r.Context(), userID, count)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		s.log.Error("batch selection failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to select batch")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": batch})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	streak, err := s.svc.Streak(r.Context(), userID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		s.log.Error("streak computation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute streak")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"streak": streak})
}

func (s *Server) handleCurve(w http.ResponseWriter, r *http.Request) {
	wordID, ok := pathID(w, r, "wordID")
	if !ok {
		return
	}
	curve, err := s.svc.Curve(r.Context(), wordID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "word not found")
		return
	}
	if err != nil {
		s.log.Error("curve computation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute curve")
		return
	}
	writeJSON(w, http.StatusOK, curve)
}

func (s *Server) handleCurves(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	var req struct {
		WordIDs []int64 `json:"word_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	curves, notFound, err := s.svc.Curves(r.Context(), userID, req.WordIDs)
	if err != nil {
		s.log.Error("batch curve computation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute curves")
		return
	}
	if notFound == nil {
		notFound = []int64{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"curves":    curves,
		"not_found": notFound,
	})
}

// handleProjection exposes the raw projection function: anchor and
// reference dates in, next review date and retention out.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AnchorDate    string `json:"anchor_date"`
		ReferenceDate string `json:"reference_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	anchor, err := time.Parse("2006-01-02", req.AnchorDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "anchor_date must be YYYY-MM-DD")
		return
	}
	reference := anchor
	if req.ReferenceDate != "" {
		reference, err = time.Parse("2006-01-02", req.ReferenceDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "reference_date must be YYYY-MM-DD")
			return
		}
	}

	writeJSON(w, http.StatusOK, retention.Project(anchor, reference))
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
