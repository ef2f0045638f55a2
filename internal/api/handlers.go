package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/vovakirdan/pattern-island/internal/game"
	"github.com/vovakirdan/pattern-island/internal/hint"
	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/progression"
)

// recentLimit is how many past completions the stats endpoint returns.
const recentLimit = 20

// levelView is a level as served to players: the correct answer id is left out.
type levelView struct {
	ID           int              `json:"id"`
	Category     pattern.Category `json:"groupType"`
	LevelInGroup int              `json:"levelInGroup"`
	Tier         pattern.Tier     `json:"difficulty"`
	TierLabel    string           `json:"tierLabel"`
	IsBoss       bool             `json:"isBoss"`
	Sequence     []pattern.Item   `json:"sequence"`
	Options      []pattern.Item   `json:"options"`
	Instruction  string           `json:"instruction"`
}

func viewLevel(l pattern.Level) levelView {
	return levelView{
		ID:           l.ID,
		Category:     l.Category,
		LevelInGroup: l.LevelInGroup,
		Tier:         l.Tier,
		TierLabel:    l.Tier.Label(),
		IsBoss:       l.IsBoss,
		Sequence:     l.Sequence,
		Options:      l.Options,
		Instruction:  l.Instruction,
	}
}

type attemptView struct {
	ID       string       `json:"id"`
	Profile  string       `json:"profile"`
	Level    levelView    `json:"level"`
	Mistakes int          `json:"mistakes"`
	UsedHint bool         `json:"usedHint"`
	Solved   bool         `json:"solved"`
	Hint     *hint.Result `json:"hint,omitempty"`
}

func viewAttempt(a game.Attempt) attemptView {
	return attemptView{
		ID:       a.ID,
		Profile:  a.Profile,
		Level:    viewLevel(a.Level),
		Mistakes: a.Mistakes,
		UsedHint: a.UsedHint,
		Solved:   a.Solved,
		Hint:     a.Hint,
	}
}

type choiceView struct {
	Outcome     game.Outcome           `json:"outcome"`
	Attempt     attemptView            `json:"attempt"`
	Award       *progression.Award     `json:"award,omitempty"`
	Stats       *progression.UserStats `json:"stats,omitempty"`
	NextLevelID int                    `json:"nextLevelId,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"levels": s.game.Catalog().Len(),
	})
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	levels := s.game.Catalog().Levels()
	if raw := r.URL.Query().Get("category"); raw != "" {
		cat, err := pattern.ParseCategory(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		levels = s.game.Catalog().ByCategory(cat)
	}
	writeJSON(w, http.StatusOK, lo.Map(levels, func(l pattern.Level, _ int) levelView { return viewLevel(l) }))
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "level id must be a number")
		return
	}
	level, ok := s.game.Catalog().Level(id)
	if !ok {
		writeError(w, http.StatusNotFound, "level not found")
		return
	}
	writeJSON(w, http.StatusOK, viewLevel(level))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	profile := strings.TrimSpace(chi.URLParam(r, "profile"))
	report, err := s.game.Report(r.Context(), profile, recentLimit)
	if err != nil {
		s.log.Error("cannot build report", "profile", profile, "err", err)
		writeError(w, http.StatusInternalServerError, "cannot load statistics")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleStartAttempt(w http.ResponseWriter, r *http.Request) {
	profile := strings.TrimSpace(chi.URLParam(r, "profile"))
	var req struct {
		LevelID int `json:"levelId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	a, err := s.game.Start(profile, req.LevelID)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewAttempt(a))
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OptionID string `json:"optionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res, err := s.game.Choose(r.Context(), chi.URLParam(r, "id"), req.OptionID)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	out := choiceView{
		Outcome:     res.Outcome,
		Attempt:     viewAttempt(res.Attempt),
		Award:       res.Award,
		NextLevelID: res.NextLevelID,
	}
	if res.Outcome == game.OutcomeCorrect {
		out.Stats = &res.Stats
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	res, err := s.game.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownLevel), errors.Is(err, game.ErrUnknownAttempt):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrHintPending), errors.Is(err, game.ErrAttemptSolved):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("game error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
