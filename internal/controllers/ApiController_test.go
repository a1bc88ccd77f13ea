package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ratingd/internal/ledger"
	"ratingd/internal/models"
	"ratingd/internal/services"
	"ratingd/internal/storage"
	"ratingd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

type env struct {
	ac     *ApiController
	ledger *ledger.Ledger
	opener *testutil.MockOpener
	logger *testutil.MockLogger
}

func newEnv(t *testing.T, store storage.StoreInterface) *env {
	t.Helper()
	e := &env{opener: &testutil.MockOpener{}, logger: &testutil.MockLogger{}}
	clock := func() time.Time { return now }
	e.ledger = ledger.New(store, e.logger, ledger.WithClock(clock))

	svc, err := services.New("123456", "com.example.app", services.Overrides{}, services.Dependencies{
		Ledger:    e.ledger,
		Presenter: &testutil.MockPresenter{},
		Opener:    e.opener,
		Logger:    e.logger,
		Clock:     clock,
	})
	require.NoError(t, err)
	e.ac = NewApiController(e.logger, svc)
	return e
}

func do(handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestRecordUse_RunsScriptedCycle(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())

	rr := do(e.ac.RecordUse, http.MethodPost, "/use", `{"answers":["accept","accept"]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	resp := decode(t, rr)
	assert.Equal(t, true, resp["eligible"])
	assert.Equal(t, "accepted", resp["outcome"])
	assert.Equal(t, []string{"https://itunes.apple.com/app/id123456?action=write-review"}, e.opener.Opened)
}

func TestRecordUse_EmptyBodyDismisses(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())

	rr := do(e.ac.RecordUse, http.MethodPost, "/use", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, true, resp["eligible"])
	assert.Equal(t, "dismissed", resp["outcome"])

	snap, err := e.ledger.ReadAll(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.DeclinedAt.IsZero())
	assert.False(t, snap.Suppressed())
	assert.Empty(t, e.opener.Opened)
}

func TestRecordUse_AnswerAfterDismissalStillCounts(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())
	require.NoError(t, e.ledger.RecordUse(context.Background()))

	rr := do(e.ac.Prompt, http.MethodPost, "/prompt", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "dismissed", decode(t, rr)["outcome"])

	rr = do(e.ac.Prompt, http.MethodPost, "/prompt", `{"answers":["accept","accept"]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "accepted", decode(t, rr)["outcome"])

	snap, err := e.ledger.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now, snap.RatedAt)
	assert.True(t, snap.DeclinedAt.IsZero())
}

func TestRecordEvent_SuppressedLedger(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())
	require.NoError(t, e.ledger.RecordRated(context.Background()))

	rr := do(e.ac.RecordEvent, http.MethodPost, "/event", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, false, resp["eligible"])
	assert.Equal(t, "none", resp["outcome"])

	snap, err := e.ledger.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.EventCount)
}

func TestPrompt_Delay(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())

	rr := do(e.ac.Prompt, http.MethodPost, "/prompt", `{"answers":["yes","later"]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "delayed", decode(t, rr)["outcome"])
}

func TestPrompt_InvalidJSON(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())

	rr := do(e.ac.Prompt, http.MethodPost, "/prompt", `{"answers":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPrompt_UnknownAnswer(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())

	rr := do(e.ac.Prompt, http.MethodPost, "/prompt", `{"answers":["maybe"]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPrompt_AnswerNotOffered(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())

	rr := do(e.ac.Prompt, http.MethodPost, "/prompt", `{"answers":["delay"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestPrompt_StorageFailure(t *testing.T) {
	e := newEnv(t, testutil.NewFailingStore("set"))

	rr := do(e.ac.Prompt, http.MethodPost, "/prompt", "")

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.NotEmpty(t, e.logger.Logs)
}

func TestEligibility(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())

	rr := do(e.ac.Eligibility, http.MethodGet, "/eligibility", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	// a fresh ledger has never been seen, which satisfies the days condition
	assert.Equal(t, true, decode(t, rr)["eligible"])

	require.NoError(t, e.ledger.RecordDecline(context.Background()))
	rr = do(e.ac.Eligibility, http.MethodGet, "/eligibility", "")
	assert.Equal(t, false, decode(t, rr)["eligible"])
}

func TestLedger_ReturnsSnapshot(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, e.ledger.RecordUse(ctx))
	require.NoError(t, e.ledger.RecordUse(ctx))
	require.NoError(t, e.ledger.RecordRatingSeen(ctx))

	rr := do(e.ac.Ledger, http.MethodGet, "/ledger", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var snap models.LedgerSnapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, int64(2), snap.UsesCount)
	assert.True(t, snap.LastSeenAt.Equal(now))
	assert.True(t, snap.RatedAt.IsZero())
}

func TestLedger_StorageFailure(t *testing.T) {
	e := newEnv(t, testutil.NewFailingStore("get"))

	rr := do(e.ac.Ledger, http.MethodGet, "/ledger", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestConcurrentUse_CountsEveryRequest(t *testing.T) {
	e := newEnv(t, storage.NewMemoryStore())
	// suppress prompting so only the counter moves
	require.NoError(t, e.ledger.RecordDecline(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			do(e.ac.RecordUse, http.MethodPost, "/use", "")
		}()
	}
	wg.Wait()

	snap, err := e.ledger.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(20), snap.UsesCount)
}
