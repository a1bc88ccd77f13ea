package controllers

import (
	"errors"
	"io"
	"net/http"
	"ratingd/internal/models"
	"ratingd/internal/presenters"
	"ratingd/internal/providers"
	"ratingd/internal/services"
	"ratingd/internal/storage"
	"sync"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 16 // 64 KB

type ApiController struct {
	logger  providers.Logger
	service services.PromptServiceInterface
	// cycles mutate the shared ledger, so they run one at a time
	mu sync.Mutex
}

// promptRequest carries the scripted answers for the dialogs of one cycle.
type promptRequest struct {
	Answers []string `json:"answers"`
}

type eligibilityResponse struct {
	Eligible bool `json:"eligible"`
}

type promptResponse struct {
	Outcome models.Outcome `json:"outcome"`
}

func NewApiController(logger providers.Logger, service services.PromptServiceInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
	}
}

func (ac *ApiController) RecordUse(w http.ResponseWriter, r *http.Request) {
	ac.recordUsage(w, r, models.UsageUse)
}

func (ac *ApiController) RecordEvent(w http.ResponseWriter, r *http.Request) {
	ac.recordUsage(w, r, models.UsagePositiveInteraction)
}

func (ac *ApiController) recordUsage(w http.ResponseWriter, r *http.Request, kind models.UsageKind) {
	svc, ok := ac.scripted(w, r)
	if !ok {
		return
	}

	ac.mu.Lock()
	res, err := svc.RecordUsageEvent(r.Context(), kind)
	ac.mu.Unlock()
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (ac *ApiController) Prompt(w http.ResponseWriter, r *http.Request) {
	svc, ok := ac.scripted(w, r)
	if !ok {
		return
	}

	ac.mu.Lock()
	outcome, err := svc.TriggerPromptFlow(r.Context())
	ac.mu.Unlock()
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, promptResponse{Outcome: outcome})
}

func (ac *ApiController) Eligibility(w http.ResponseWriter, r *http.Request) {
	ok, err := ac.service.Eligible(r.Context())
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eligibilityResponse{Eligible: ok})
}

func (ac *ApiController) Ledger(w http.ResponseWriter, r *http.Request) {
	snap, err := ac.service.Snapshot(r.Context())
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// scripted binds the service to the answers posted in the request body.
// An empty body dismisses every dialog.
func (ac *ApiController) scripted(w http.ResponseWriter, r *http.Request) (services.PromptServiceInterface, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var payload promptRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return nil, false
	}

	answers, err := presenters.ParseAnswers(payload.Answers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return ac.service.WithPresenter(presenters.NewScriptedPresenter(answers...)), true
}

func (ac *ApiController) fail(w http.ResponseWriter, r *http.Request, err error) {
	ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %v", r.Method, r.URL.Path, err)

	switch {
	case errors.Is(err, services.ErrInvalidChoice):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrStorage):
		http.Error(w, "Storage Unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}
