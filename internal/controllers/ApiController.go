package controllers

import (
	"context"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"puzzlestats/internal/events"
	"puzzlestats/internal/models"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/services"
	"puzzlestats/internal/stats"
	"strings"

	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type TimedSubmitter interface {
	SubmitTimed(ctx context.Context, sub models.TimedSubmission) (services.TimedResult, error)
}

type ApiController struct {
	logger    providers.Logger
	stats     services.StatsServiceInterface
	submitter TimedSubmitter
	publisher events.Publisher
	cache     providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, stats services.StatsServiceInterface, submitter TimedSubmitter, publisher events.Publisher, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		stats:     stats,
		submitter: submitter,
		publisher: publisher,
		cache:     cache,
	}
}

// cacheKey prefixes the game's cache tag so any write, or a new day for
// Mini, invalidates every rendered response.
func (ac *ApiController) cacheKey(namespace string, game models.GameType, parts ...any) string {
	return cacheKey(ac.stats, namespace, game, parts...)
}

func cacheKey(s services.StatsServiceInterface, namespace string, game models.GameType, parts ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s:%s", namespace, s.CacheTag(game), game)
	for _, p := range parts {
		fmt.Fprintf(&b, ":%v", p)
	}
	return b.String()
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeRaw(w, http.StatusOK, "application/json", data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeRaw(w, http.StatusOK, "application/json", gson)
}

// ReceiveEvent queues a chat message for ingestion.
func (ac *ApiController) ReceiveEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var event models.ChatEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if event.MessageID == "" {
		http.Error(w, "messageId: required", http.StatusBadRequest)
		return
	}

	id, err := ac.publisher.Publish(r.Context(), event)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Publish %s failed: %s", event.MessageID, err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

// SubmitMini records a manual Mini time.
func (ac *ApiController) SubmitMini(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var sub models.TimedSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res, err := ac.submitter.SubmitTimed(r.Context(), sub)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	game, window, user, err := summaryParams(r)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.serveFromCacheOrCompute(w, ac.cacheKey("stats", game, window, user), func() (any, error) {
		return ac.stats.Summary(user, game, window)
	})
}

func (ac *ApiController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	game, err := models.ParseGameType(r.URL.Query().Get("game"))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = cast.ToIntE(raw)
		if err != nil {
			ac.writeError(w, models.NewValidationError("page", "must be a number"))
			return
		}
	}
	ac.serveFromCacheOrCompute(w, ac.cacheKey("leaderboard", game, page), func() (any, error) {
		return ac.stats.Leaderboard(game, page)
	})
}

func summaryParams(r *http.Request) (models.GameType, stats.Window, string, error) {
	q := r.URL.Query()
	game, err := models.ParseGameType(q.Get("game"))
	if err != nil {
		return "", "", "", err
	}
	window, err := stats.ParseWindow(q.Get("window"))
	if err != nil {
		return "", "", "", err
	}
	user := strings.TrimSpace(q.Get("user"))
	if user == "" {
		return "", "", "", models.NewValidationError("user", "required")
	}
	return game, window, user, nil
}

// writeError maps domain errors to status codes. Validation messages are
// meant for the caller and are passed through.
func (ac *ApiController) writeError(w http.ResponseWriter, err error) {
	writeError(w, ac.logger, err)
}

func writeError(w http.ResponseWriter, logger providers.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrUnknownGame):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNoData):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		logger.Errorf(providers.TypeGet, "Request failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, "application/json", gson)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
