package controllers

import (
	"fmt"
	"net/http"
	"puzzlestats/internal/models"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/render"
	"puzzlestats/internal/services"
	"time"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController serves rendered artifacts: distribution charts and the
// workbook export.
type ReportController struct {
	logger providers.Logger
	stats  services.StatsServiceInterface
	cache  providers.CacheProviderInterface
	clock  services.Clock
}

func NewReportController(logger providers.Logger, stats services.StatsServiceInterface, cache providers.CacheProviderInterface, clock services.Clock) *ReportController {
	return &ReportController{logger: logger, stats: stats, cache: cache, clock: clock}
}

func (rc *ReportController) GetChart(w http.ResponseWriter, r *http.Request) {
	game, window, user, err := summaryParams(r)
	if err != nil {
		writeError(w, rc.logger, err)
		return
	}

	key := cacheKey(rc.stats, "chart", game, window, user)
	if data, ok := rc.cache.Get(key); ok {
		writeRaw(w, http.StatusOK, "image/png", data)
		return
	}

	summary, err := rc.stats.Summary(user, game, window)
	if err != nil {
		writeError(w, rc.logger, err)
		return
	}
	title := fmt.Sprintf("%s: %s (%s)", summary.Username, game.Title(), window)
	img, err := render.DistributionChart(title, summary.Distribution)
	if err != nil {
		writeError(w, rc.logger, err)
		return
	}

	rc.cache.Set(key, img)
	writeRaw(w, http.StatusOK, "image/png", img)
}

// Export streams every leaderboard and all-time player summary as xlsx.
func (rc *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	boards, players := render.Collect(rc.stats)
	buf, err := render.Workbook(boards, players)
	if err != nil {
		writeError(w, rc.logger, err)
		return
	}

	name := fmt.Sprintf("puzzlestats-%s.xlsx", rc.clock().Format(models.DateLayout))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Last-Modified", rc.clock().UTC().Format(time.RFC1123))
	writeRaw(w, http.StatusOK, xlsxContentType, buf.Bytes())
}
