package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moodtrail/moodtrail/internal/app/engagement"
	"github.com/moodtrail/moodtrail/internal/domain"
)

// ─── Views ──────────────────────────────────────────────────────────────────

// achievementView is an achievement with its rule in serializable form.
type achievementView struct {
	domain.Achievement
	Condition  map[string]any `json:"condition"`
	Rule       string         `json:"rule"`
	Unlocked   bool           `json:"unlocked"`
	UnlockedAt *time.Time     `json:"unlocked_at,omitempty"`
}

func achievementViews(catalog engagement.Catalog, unlocked []domain.UnlockedAchievement) []achievementView {
	at := make(map[string]time.Time, len(unlocked))
	for _, u := range unlocked {
		at[u.ID] = u.UnlockedAt
	}
	all := catalog.Achievements()
	out := make([]achievementView, len(all))
	for i, a := range all {
		v := achievementView{
			Achievement: a,
			Condition:   domain.ConditionParams(a.Condition),
			Rule:        domain.DescribeCondition(a.Condition),
		}
		if t, ok := at[a.ID]; ok {
			v.Unlocked = true
			v.UnlockedAt = &t
		}
		out[i] = v
	}
	return out
}

// ─── Catalog ────────────────────────────────────────────────────────────────

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := s.journal.Engine().Catalog()
	writeJSON(w, http.StatusOK, map[string]any{
		"achievements": achievementViews(catalog, nil),
		"levels":       catalog.Levels(),
		"emotions":     domain.Emotions,
	})
}

// ─── Entries ────────────────────────────────────────────────────────────────

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	var draft domain.EntryDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	entry, result, err := s.journal.Record(r.Context(), chi.URLParam(r, "userID"), draft)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"entry":  entry,
		"result": result,
	})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	entries, err := s.journal.List(r.Context(), chi.URLParam(r, "userID"), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.EmotionEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	result, err := s.journal.Delete(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ─── Engagement ─────────────────────────────────────────────────────────────

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.journal.Evaluate(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Stats)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	sum, err := s.journal.Summary(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"achievements": achievementViews(s.journal.Engine().Catalog(), sum.Unlocked),
		"stats":        sum.AchievementStats,
	})
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	sum, err := s.journal.Summary(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum.Level)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	result, err := s.journal.Evaluate(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	recs := result.Recommended
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.journal.Summary(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleSetCounters(w http.ResponseWriter, r *http.Request) {
	var c domain.EngagementCounters
	if !decodeBody(w, r, &c) {
		return
	}
	result, err := s.journal.SetCounters(r.Context(), chi.URLParam(r, "userID"), c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	pending, err := s.journal.Notifications().Pending(r.Context(), chi.URLParam(r, "userID"), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if pending == nil {
		pending = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": pending})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "notification id must be an integer")
		return
	}
	if err := s.journal.Notifications().MarkShown(r.Context(), chi.URLParam(r, "userID"), id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
