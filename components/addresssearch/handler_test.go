package addresssearch

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-leadflow/pkg/services"
)

type handlerResponse struct {
	Data []services.AddressMatch `json:"data"`
}

func TestHandler_EmptyQueryReturnsEmptyDataArray(t *testing.T) {
	h := Handler(WithEntries(testEntries()))

	req := httptest.NewRequest(http.MethodGet, "/api/address-search", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := strings.TrimSpace(res.Header.Get("Content-Type")); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload handlerResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestHandler_SearchAndLimitClamped(t *testing.T) {
	h := Handler(WithEntries(testEntries()), WithMaxLimit(1))

	req := httptest.NewRequest(http.MethodGet, "/api/address-search?q=main&limit=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload handlerResponse
	if err := json.NewDecoder(rec.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 1 {
		t.Fatalf("expected 1 result, got %d: %#v", len(payload.Data), payload.Data)
	}
	if payload.Data[0].Address != "123 Main St" {
		t.Fatalf("unexpected first match: %#v", payload.Data[0])
	}
}

func TestHandler_CustomQueryParams(t *testing.T) {
	h := Handler(
		WithEntries(testEntries()),
		WithSearchParam("search"),
		WithLimitParam("l"),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/address-search?search=cedar&l=5", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload handlerResponse
	if err := json.NewDecoder(rec.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].ID != "d" {
		t.Fatalf("unexpected result: %#v", payload.Data)
	}
}

func TestHandlerWithOptions_NormalizesZeroValue(t *testing.T) {
	h := HandlerWithOptions(Options{Entries: testEntries()})

	req := httptest.NewRequest(http.MethodGet, "/api/address-search?q=main", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var payload handlerResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("zero-value options should backfill the query param and limits, got %#v", payload.Data)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := Handler(WithEntries(testEntries()))

	req := httptest.NewRequest(http.MethodPost, "/api/address-search?q=main", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.StatusCode)
	}
	if allow := res.Header.Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("missing Allow header, got %q", allow)
	}
}

func TestHandler_HeadOmitsBody(t *testing.T) {
	h := Handler(WithEntries(testEntries()))

	req := httptest.NewRequest(http.MethodHead, "/api/address-search?q=main", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("HEAD response should have no body, got %q", rec.Body.String())
	}
}

func TestHandler_GuardRejects(t *testing.T) {
	guard := func(r *http.Request) error {
		if r.Header.Get("X-Api-Key") == "" {
			return StatusError{Code: http.StatusUnauthorized, Err: errors.New("missing key")}
		}
		return nil
	}
	h := Handler(WithEntries(testEntries()), WithGuard(guard))

	req := httptest.NewRequest(http.MethodGet, "/api/address-search?q=main", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Result().StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/address-search?q=main", nil)
	req.Header.Set("X-Api-Key", "k")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", rec.Result().StatusCode)
	}
}
