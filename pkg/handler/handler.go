package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/chartfeed/sheetproxy/pkg/logme"
	"github.com/chartfeed/sheetproxy/pkg/series"
	"github.com/chartfeed/sheetproxy/pkg/sheetcache"
)

// sheetDataKey is the only key the cache ever holds.
const sheetDataKey = "sheetData"

// Fetcher is the one upstream operation the handler depends on.
type Fetcher interface {
	FetchRange(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

// mockSeries is served while the sheets client is unavailable. It is never
// cached, so the service recovers as soon as a working client appears after
// a restart.
var mockSeries = series.Series{
	Status: "ok",
	Values: []float64{100, 105, 95, 110, 115, 105, 100, 90, 95, 120},
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Handler serves the sheet-data API. The cache and fetcher are injected by
// the composition root; a nil fetcher means degraded mode.
type Handler struct {
	cache          *sheetcache.Cache
	fetcher        Fetcher
	degradedReason string
	sheetID        string
	sheetRange     string
}

// New returns a handler backed by a working sheets client.
func New(cache *sheetcache.Cache, fetcher Fetcher, sheetID, sheetRange string) *Handler {
	return &Handler{
		cache:      cache,
		fetcher:    fetcher,
		sheetID:    sheetID,
		sheetRange: sheetRange,
	}
}

// NewDegraded returns a handler that serves mock data because no sheets
// client could be built. The reason is kept for debug logging only.
func NewDegraded(cache *sheetcache.Cache, reason string) *Handler {
	return &Handler{
		cache:          cache,
		degradedReason: reason,
	}
}

// Routes binds the handler to its HTTP surface.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sheet-data", h.SheetData)
	mux.HandleFunc("GET /api/refresh-cache", h.RefreshCache)
	mux.HandleFunc("GET /{$}", h.Index)
	return mux
}

// SheetData serves the formatted series: cache first, then a fresh fetch,
// or the fixed mock series when no client is available.
func (h *Handler) SheetData(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.Get(sheetDataKey); ok {
		logme.Debugln("serving sheet data from cache")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	if h.fetcher == nil {
		logme.DebugF("sheets client unavailable (%s), serving mock data\n", h.degradedReason)
		writeJSON(w, http.StatusOK, mockSeries)
		return
	}

	rows, err := h.fetcher.FetchRange(r.Context(), h.sheetID, h.sheetRange)
	if err != nil {
		logme.Errorln("sheet fetch failed:", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "Failed to fetch data from Google Sheets",
			Details: err.Error(),
		})
		return
	}

	if len(rows) == 0 {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "No data found in spreadsheet"})
		return
	}

	formatted := series.Format(rows)
	h.cache.Set(sheetDataKey, formatted)
	logme.DebugF("fetched %d rows, cached %d values\n", len(rows), len(formatted.Values))
	writeJSON(w, http.StatusOK, formatted)
}

// RefreshCache drops the cached series. Always succeeds, even when nothing
// was cached.
func (h *Handler) RefreshCache(w http.ResponseWriter, _ *http.Request) {
	h.cache.Delete(sheetDataKey)
	writeJSON(w, http.StatusOK, map[string]string{"status": "Cache cleared"})
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>sheetproxy</title></head>
<body>
<h1>sheetproxy</h1>
<p>Serves chart-ready time series read from a Google Sheet.</p>
<ul>
<li><a href="/api/sheet-data">/api/sheet-data</a> &mdash; formatted series (cached)</li>
<li><a href="/api/refresh-cache">/api/refresh-cache</a> &mdash; drop the cached series</li>
</ul>
</body>
</html>
`

// Index serves a small status page listing the API endpoints.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexPage)); err != nil {
		logme.Errorln("writing index page:", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logme.Errorln("writing response:", err)
	}
}
