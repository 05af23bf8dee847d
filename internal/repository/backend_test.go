package repository

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noah-isme/planify-web/pkg/backend"
	"github.com/noah-isme/planify-web/pkg/config"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]interface{}
}

// newBackend starts a fake backend answering every request with respond and
// records what it received.
func newBackend(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*backend.Client, *[]recordedRequest) {
	t.Helper()
	var got []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		got = append(got, rec)
		respond(w, r)
	}))
	t.Cleanup(srv.Close)
	return backend.NewClient(config.BackendConfig{BaseURL: srv.URL}, nil, nil), &got
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
