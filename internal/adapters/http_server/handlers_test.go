package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "airport_lookup/internal/adapters/http_server"
	"airport_lookup/internal/app"
	"airport_lookup/internal/domain"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	table := domain.NewTable([]domain.Airport{
		{Name: "Sydney", Latitude: -33.95, Longitude: 151.18, IATACode: "SYD"},
		{Name: "Darwin", Latitude: -12.42, Longitude: 130.88, IATACode: "DRW"},
	})
	q := app.NewQueryService(table, nil, time.Minute)
	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{
		Q: q,
		Info: domain.Info{
			ID: "airports", DisplayName: "Airports", Type: "cluster",
			Center: domain.InfoCenter{Latitude: -25, Longitude: 134}, Zoom: 4,
			MaxZoom: 12, Visible: true, Scope: "all",
		},
	})
	return srv.Mux()
}

func do(t *testing.T, h http.Handler, target string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestInfo(t *testing.T) {
	rr := do(t, newTestServer(t), "/ws/info/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	center, _ := got["center"].(map[string]any)
	if got["id"] != "airports" || got["displayName"] != "Airports" || got["type"] != "cluster" ||
		got["zoom"] != 4.0 || center["latitude"] != -25.0 || center["longitude"] != 134.0 ||
		got["maxZoom"] != 12.0 || got["visible"] != true || got["scope"] != "all" {
		t.Fatalf("unexpected info: %+v", got)
	}
}

func TestDataAll_ShapeAndOrder(t *testing.T) {
	rr := do(t, newTestServer(t), "/ws/data/all", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	want := `[{"name":"Sydney","latitude":-33.95,"longitude":151.18},{"name":"Darwin","latitude":-12.42,"longitude":130.88}]`
	if got := strings.TrimSpace(rr.Body.String()); got != want {
		t.Fatalf("body\n got: %s\nwant: %s", got, want)
	}
}

func TestDataWithin(t *testing.T) {
	h := newTestServer(t)
	cases := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{"sydney only", "lat1=-35&lon1=150&lat2=-33&lon2=152", 200, `[{"name":"Sydney","latitude":-33.95,"longitude":151.18}]`},
		{"both", "lat1=-40&lon1=120&lat2=0&lon2=160", 200, `[{"name":"Sydney","latitude":-33.95,"longitude":151.18},{"name":"Darwin","latitude":-12.42,"longitude":130.88}]`},
		{"inverted corners", "lat1=-33&lon1=152&lat2=-35&lon2=150", 200, `[]`},
		{"empty region", "lat1=10&lon1=10&lat2=20&lon2=20", 200, `[]`},
		{"corner inclusive", "lat1=-12.42&lon1=130.88&lat2=-12.42&lon2=130.88", 200, `[{"name":"Darwin","latitude":-12.42,"longitude":130.88}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, "/ws/data/within?"+tc.query, nil)
			if rr.Code != tc.status {
				t.Fatalf("status %d, body %s", rr.Code, rr.Body.String())
			}
			if got := strings.TrimSpace(rr.Body.String()); got != tc.body {
				t.Fatalf("body\n got: %s\nwant: %s", got, tc.body)
			}
		})
	}
}

func TestDataWithin_BadParams(t *testing.T) {
	h := newTestServer(t)
	for _, q := range []string{
		"",
		"lat1=-35&lon1=150&lat2=-33",
		"lat1=abc&lon1=150&lat2=-33&lon2=152",
		"lat1=-35&lon1=150&lat2=NaN&lon2=152",
	} {
		rr := do(t, h, "/ws/data/within?"+q, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", q, rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
			t.Fatalf("%q: content type %q", q, ct)
		}
		var p struct {
			Status int    `json:"status"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil || p.Status != 400 || p.Detail == "" {
			t.Fatalf("%q: unexpected problem body %s", q, rr.Body.String())
		}
	}
}

func TestDataAll_ETag(t *testing.T) {
	h := newTestServer(t)
	first := do(t, h, "/ws/data/all", nil)
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	second := do(t, h, "/ws/data/all", map[string]string{"If-None-Match": etag})
	if second.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", second.Code)
	}
	if second.Body.Len() != 0 {
		t.Fatalf("304 must not carry a body")
	}
}

func TestHealthz(t *testing.T) {
	rr := do(t, newTestServer(t), "/ws/healthz", nil)
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `"OK"` {
		t.Fatalf("unexpected healthz: %d %s", rr.Code, rr.Body.String())
	}
}

func TestRoutes_DeclareJSON(t *testing.T) {
	h := &httpserver.Handlers{}
	seen := map[string]bool{}
	for _, rt := range h.Routes() {
		if rt.Method != http.MethodGet || rt.ContentType != "application/json" || rt.Handler == nil {
			t.Fatalf("unexpected route %+v", rt)
		}
		seen[rt.Pattern] = true
	}
	for _, p := range []string{"/ws/info/", "/ws/data/all", "/ws/data/within"} {
		if !seen[p] {
			t.Fatalf("route %s not registered", p)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	rr := do(t, newTestServer(t), "/ws/data/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
