package controllers

import (
	"context"
	"errors"
	json "github.com/goccy/go-json"
	"io/fs"
	"net/http"
	"puzzlestats/internal/backfill"
	"puzzlestats/internal/providers"
)

type BackfillRunner interface {
	Start(ctx context.Context, req backfill.Request) (string, error)
	Running() bool
}

type BackfillController struct {
	logger providers.Logger
	runner BackfillRunner
}

func NewBackfillController(logger providers.Logger, runner BackfillRunner) *BackfillController {
	return &BackfillController{logger: logger, runner: runner}
}

// Start begins a replay in the background. Progress and the final report
// go to the backfill log.
func (bc *BackfillController) Start(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req backfill.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.ChannelID == "" {
		http.Error(w, "channelId: required", http.StatusBadRequest)
		return
	}

	runID, err := bc.runner.Start(r.Context(), req)
	switch {
	case errors.Is(err, backfill.ErrBadToken):
		http.Error(w, "Incorrect security token.", http.StatusForbidden)
	case errors.Is(err, backfill.ErrAlreadyRunning):
		http.Error(w, "Channel history is already being processed.", http.StatusConflict)
	case errors.Is(err, backfill.ErrBadChannel), errors.Is(err, backfill.ErrUnknownMessage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, fs.ErrNotExist):
		http.Error(w, "No history for channel "+req.ChannelID+".", http.StatusNotFound)
	case err != nil:
		bc.logger.Errorf(providers.TypeBackfill, "Backfill start failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusAccepted, map[string]string{"runId": runID})
	}
}
