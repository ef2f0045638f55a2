package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pattern-island/internal/catalog"
	"github.com/vovakirdan/pattern-island/internal/events"
	"github.com/vovakirdan/pattern-island/internal/game"
	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/progression"
	"github.com/vovakirdan/pattern-island/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *game.Service) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc, err := game.NewService(game.Options{
		Catalog: catalog.MustBuild(catalog.NewRand(5)),
		Engine:  progression.NewEngine(progression.DefaultRules(), nil),
		Store:   store,
		Bus:     events.NewBus(16),
	})
	require.NoError(t, err)
	return NewServer(svc, nil), svc
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Routes(), http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", got["status"])
	assert.EqualValues(t, 110, got["levels"])
}

func TestLevelsHideAnswer(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	rec := do(t, h, http.MethodGet, "/api/levels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "correctAnswerId")
	assert.Len(t, decode[[]levelView](t, rec), 110)

	rec = do(t, h, http.MethodGet, "/api/levels?category=shape", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	shapes := decode[[]levelView](t, rec)
	require.Len(t, shapes, 10)
	assert.Equal(t, pattern.CategoryShape, shapes[0].Category)

	rec = do(t, h, http.MethodGet, "/api/levels/15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lv := decode[levelView](t, rec)
	assert.True(t, lv.IsBoss)
	assert.Len(t, lv.Options, pattern.OptionCount)
}

func TestServedOptionsDoNotRevealAnswer(t *testing.T) {
	srv, svc := newTestServer(t)
	h := srv.Routes()

	correctIDs := make(map[string]bool)
	for _, want := range svc.Catalog().Levels() {
		rec := do(t, h, http.MethodGet, fmt.Sprintf("/api/levels/%d", want.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		lv := decode[levelView](t, rec)

		for _, o := range lv.Options {
			assert.NotEqual(t, pattern.CorrectOptionID, o.ID, "level %d", lv.ID)
			assert.NotContains(t, o.ID, "correct", "level %d", lv.ID)
			assert.NotContains(t, o.ID, "wrong", "level %d", lv.ID)
		}
		correctIDs[want.CorrectAnswerID] = true
	}
	// A shared id for the answer would give it away across levels.
	assert.Len(t, correctIDs, svc.Catalog().Len())

	rec := do(t, h, http.MethodPost, "/api/players/ada/attempts", map[string]int{"levelId": 7})
	require.Equal(t, http.StatusCreated, rec.Code)
	for _, o := range decode[attemptView](t, rec).Level.Options {
		assert.NotEqual(t, pattern.CorrectOptionID, o.ID)
	}
}

func TestLevelErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/levels/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/levels/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/levels?category=planets", nil).Code)
}

func TestAttemptFlow(t *testing.T) {
	srv, svc := newTestServer(t)
	h := srv.Routes()

	rec := do(t, h, http.MethodPost, "/api/players/ada/attempts", map[string]int{"levelId": 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "correctAnswerId")
	attempt := decode[attemptView](t, rec)
	require.NotEmpty(t, attempt.ID)

	level, _ := svc.Catalog().Level(3)
	wrong := ""
	for _, o := range level.Options {
		if o.ID != level.CorrectAnswerID {
			wrong = o.ID
			break
		}
	}

	rec = do(t, h, http.MethodPost, "/api/attempts/"+attempt.ID+"/choose", map[string]string{"optionId": wrong})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"outcome":"wrong"`)

	rec = do(t, h, http.MethodPost, "/api/attempts/"+attempt.ID+"/hint", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hintBody := decode[map[string]string](t, rec)
	assert.Equal(t, "local", hintBody["source"])
	assert.NotEmpty(t, hintBody["text"])

	rec = do(t, h, http.MethodPost, "/api/attempts/"+attempt.ID+"/choose", map[string]string{"optionId": level.CorrectAnswerID})
	require.Equal(t, http.StatusOK, rec.Code)
	choice := decode[struct {
		Outcome string                 `json:"outcome"`
		Award   *progression.Award     `json:"award"`
		Stats   *progression.UserStats `json:"stats"`
		Next    int                    `json:"nextLevelId"`
	}](t, rec)
	assert.Equal(t, "correct", choice.Outcome)
	require.NotNil(t, choice.Award)
	assert.False(t, choice.Award.Perfect)
	require.NotNil(t, choice.Stats)
	assert.Equal(t, []int{3}, choice.Stats.CompletedLevels)
	assert.Equal(t, 4, choice.Next)

	rec = do(t, h, http.MethodPost, "/api/attempts/"+attempt.ID+"/hint", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/players/ada/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[game.Report](t, rec)
	assert.Equal(t, "ada", report.Profile)
	assert.Equal(t, 1, report.Explored.Completed)
	require.Len(t, report.Recent, 1)
	assert.True(t, report.Recent[0].UsedHint)
}

func TestAttemptErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	rec := do(t, h, http.MethodPost, "/api/players/ada/attempts", map[string]int{"levelId": 500})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/attempts/missing/choose", map[string]string{"optionId": "opt-correct"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/players/ada/attempts", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	srv.Metrics().Observe(events.ChoiceWrong{Profile: "ada"})
	srv.Metrics().Observe(events.LevelCompleted{Category: pattern.CategoryColor, Tier: pattern.TierBeginner, SolveMs: 4000})
	srv.Metrics().Observe(events.HintResolved{Source: "local"})
	do(t, h, http.MethodGet, "/healthz", nil)

	rec := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `patternisland_choices_total{result="wrong"} 1`)
	assert.Contains(t, body, `patternisland_levels_completed_total{boss="false",category="COLOR",tier="beginner"} 1`)
	assert.Contains(t, body, `patternisland_hints_total{source="local"} 1`)
	assert.Contains(t, body, `patternisland_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestEventStream(t *testing.T) {
	srv, svc := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events?profile=ada"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	svc.Click("bob")
	svc.Hover("ada", "opt-wrong-1")

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)

	var env struct {
		Kind  string          `json:"kind"`
		Event json.RawMessage `json:"event"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, "hover", env.Kind)
	assert.Contains(t, string(env.Event), `"optionId":"opt-wrong-1"`)

	conn.Close(websocket.StatusNormalClosure, "")
}
