package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deemkeen/crownconsole/util"
)

func TestHealthz(t *testing.T) {
	router := NewRouter(&util.AppConfig{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got error: %v", err)
	}
	if body["status"] != "ok" || body["version"] != util.GetVersion() {
		t.Errorf("Expected ok status with version, got %v", body)
	}
}

func TestFeedRoutesDisabled(t *testing.T) {
	conf := &util.AppConfig{}
	conf.Conf.WithFeed = false
	router := NewRouter(conf, &stubSource{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed.rss", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 when feed is disabled, got %d", w.Code)
	}
}

func TestGzipResponses(t *testing.T) {
	router := NewRouter(&util.AppConfig{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	router.ServeHTTP(w, req)

	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("Expected gzip encoding, got %q", w.Header().Get("Content-Encoding"))
	}
}
