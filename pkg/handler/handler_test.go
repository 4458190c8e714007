package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chartfeed/sheetproxy/pkg/sheetcache"
)

type stubFetcher struct {
	rows  [][]interface{}
	err   error
	calls int
}

func (s *stubFetcher) FetchRange(_ context.Context, _, _ string) ([][]interface{}, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func get(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestSheetDataFormatsAndCaches(t *testing.T) {
	cache := sheetcache.New(time.Minute)
	fetcher := &stubFetcher{rows: [][]interface{}{
		{"Date", "Price"},
		{"2024-01-01", "100"},
		{"2024-01-02", "abc"},
		{"2024-01-03", ""},
	}}
	h := New(cache, fetcher, "sheet-1", "Sheet1!A:B")

	rec := get(t, h, "/api/sheet-data")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.JSONEq(t, `{"status":"ok","values":[100]}`, rec.Body.String())

	// a second call inside the TTL window must not touch the upstream and
	// must return the exact same bytes
	rec2 := get(t, h, "/api/sheet-data")
	require.Equal(t, http.StatusOK, rec2.Code)
	require.Equal(t, rec.Body.Bytes(), rec2.Body.Bytes())
	require.Equal(t, 1, fetcher.calls)
}

func TestSheetDataHeaderOnly(t *testing.T) {
	cache := sheetcache.New(time.Minute)
	fetcher := &stubFetcher{rows: [][]interface{}{{"Date", "Price"}}}
	h := New(cache, fetcher, "sheet-1", "Sheet1!A:B")

	rec := get(t, h, "/api/sheet-data")
	// header-only data is still a success, just an empty series
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","values":[]}`, rec.Body.String())
}

func TestSheetDataEmptySheet(t *testing.T) {
	cache := sheetcache.New(time.Minute)
	fetcher := &stubFetcher{}
	h := New(cache, fetcher, "sheet-1", "Sheet1!A:B")

	rec := get(t, h, "/api/sheet-data")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"No data found in spreadsheet"}`, rec.Body.String())

	// failures are never cached
	_, ok := cache.Get(sheetDataKey)
	require.False(t, ok)
}

func TestSheetDataUpstreamError(t *testing.T) {
	cache := sheetcache.New(time.Minute)
	fetcher := &stubFetcher{err: errors.New("quota exceeded")}
	h := New(cache, fetcher, "sheet-1", "Sheet1!A:B")

	rec := get(t, h, "/api/sheet-data")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Failed to fetch data from Google Sheets", body["error"])
	require.Equal(t, "quota exceeded", body["details"])

	_, ok := cache.Get(sheetDataKey)
	require.False(t, ok)
}

func TestSheetDataDegradedMode(t *testing.T) {
	cache := sheetcache.New(time.Minute)
	h := NewDegraded(cache, "credentials missing")

	rec := get(t, h, "/api/sheet-data")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"status":"ok","values":[100,105,95,110,115,105,100,90,95,120]}`,
		rec.Body.String())

	// the mock series is never cached; every degraded request repeats the path
	_, ok := cache.Get(sheetDataKey)
	require.False(t, ok)

	rec2 := get(t, h, "/api/sheet-data")
	require.Equal(t, rec.Body.String(), rec2.Body.String())
}

func TestRefreshCacheClearsAndIsIdempotent(t *testing.T) {
	cache := sheetcache.New(time.Minute)
	fetcher := &stubFetcher{rows: [][]interface{}{{"Date", "Price"}, {"2024-01-01", "100"}}}
	h := New(cache, fetcher, "sheet-1", "Sheet1!A:B")

	get(t, h, "/api/sheet-data")
	require.Equal(t, 1, fetcher.calls)

	rec := get(t, h, "/api/refresh-cache")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"Cache cleared"}`, rec.Body.String())

	// clearing again with nothing cached is the same success
	rec2 := get(t, h, "/api/refresh-cache")
	require.Equal(t, http.StatusOK, rec2.Code)
	require.Equal(t, rec.Body.String(), rec2.Body.String())

	// next data request goes back upstream
	get(t, h, "/api/sheet-data")
	require.Equal(t, 2, fetcher.calls)
}

func TestIndexPage(t *testing.T) {
	h := NewDegraded(sheetcache.New(time.Minute), "test")

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "/api/sheet-data")
	require.Contains(t, rec.Body.String(), "/api/refresh-cache")
}

func TestUnknownPathIs404(t *testing.T) {
	h := NewDegraded(sheetcache.New(time.Minute), "test")

	rec := get(t, h, "/api/unknown")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
