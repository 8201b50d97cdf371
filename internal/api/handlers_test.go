package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"archiveheart/internal/emotion"
	"archiveheart/internal/share"
	"archiveheart/internal/skin"
	"archiveheart/internal/track"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	return NewServer(Options{
		BaseURL:        "https://timeline.test",
		MaxFileSize:    1 << 20,
		AllowedOrigins: []string{"http://localhost:3000"},
		Classifier:     emotion.NewClassifier(emotion.HashJitter{}),
	})
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, skinID string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("file", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte(content))
	}
	if skinID != "" {
		mw.WriteField("skin", skinID)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

type viewBody struct {
	Tracks       []track.Track   `json:"tracks"`
	TotalMinutes int             `json:"totalMinutes"`
	Stats        track.Stats     `json:"stats"`
	YearRange    track.YearRange `json:"yearRange"`
	Distribution map[string]int  `json:"distribution"`
	Skin         skin.Skin       `json:"skin"`
	ShareURL     string          `json:"shareUrl"`
}

func TestIngestThenView(t *testing.T) {
	s := newTestServer()
	body, ctype := multipartBody(t, "cityscape", map[string]string{
		"history.csv": "endTime,artistName,trackName,msPlayed\n" +
			"2023-01-01T10:00:00,Test Artist,Happy Song,180000\n" +
			"2023-01-01T11:00:00,Test Artist,,1000\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/ingest", body)
	req.Header.Set("Content-Type", ctype)

	w := do(t, s, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var ingested viewBody
	if err := json.Unmarshal(w.Body.Bytes(), &ingested); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if ingested.TotalMinutes != 3 || ingested.Stats.TotalSongs != 1 || ingested.Distribution["happy"] != 1 {
		t.Errorf("unexpected ingest response: %+v", ingested)
	}
	if ingested.Skin.ID != "cityscape" {
		t.Errorf("unexpected skin %q", ingested.Skin.ID)
	}
	if !strings.HasPrefix(ingested.ShareURL, "https://timeline.test/view?data=") {
		t.Fatalf("unexpected share url %q", ingested.ShareURL)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}

	u, err := url.Parse(ingested.ShareURL)
	if err != nil {
		t.Fatalf("bad share url: %v", err)
	}
	w = do(t, s, httptest.NewRequest(http.MethodGet, "/view?"+u.RawQuery, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var viewed viewBody
	if err := json.Unmarshal(w.Body.Bytes(), &viewed); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if viewed.Stats != ingested.Stats || viewed.Skin.ID != "cityscape" || len(viewed.Tracks) != 1 {
		t.Errorf("view does not match ingest: %+v", viewed)
	}

	w = do(t, s, httptest.NewRequest(http.MethodGet, "/view/stats/2023?"+u.RawQuery, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var stats struct {
		Year  int             `json:"year"`
		Stats track.YearStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if stats.Year != 2023 || stats.Stats.TotalMinutes != 3 || stats.Stats.MostPlayedArtist != "Test Artist" {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestIngest_Errors(t *testing.T) {
	s := newTestServer()

	headerOnly, ctype := multipartBody(t, "", map[string]string{"h.csv": "endTime,artistName,trackName,msPlayed\n"})
	req := httptest.NewRequest(http.MethodPost, "/ingest", headerOnly)
	req.Header.Set("Content-Type", ctype)
	w := do(t, s, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No valid tracks found") {
		t.Errorf("unexpected body %s", w.Body.String())
	}

	binary, ctype := multipartBody(t, "", map[string]string{"b.csv": "\x00\xff"})
	req = httptest.NewRequest(http.MethodPost, "/ingest", binary)
	req.Header.Set("Content-Type", ctype)
	if w := do(t, s, req); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	empty, ctype := multipartBody(t, "", nil)
	req = httptest.NewRequest(http.MethodPost, "/ingest", empty)
	req.Header.Set("Content-Type", ctype)
	if w := do(t, s, req); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without files, got %d", w.Code)
	}
}

func TestView_Errors(t *testing.T) {
	s := newTestServer()
	emptyPayload, err := share.Encode(nil, "ocean")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	testCases := []struct {
		name   string
		target string
		status int
	}{
		{"no data", "/view", http.StatusBadRequest},
		{"corrupted", "/view?data=AAAAbbbbCCCC", http.StatusBadRequest},
		{"empty tracks", "/view?data=" + emptyPayload, http.StatusUnprocessableEntity},
		{"bad year", "/view/stats/abc?data=x", http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, s, httptest.NewRequest(http.MethodGet, tc.target, nil))
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestSkins(t *testing.T) {
	s := newTestServer()

	w := do(t, s, httptest.NewRequest(http.MethodGet, "/skins", nil))
	var skins []skin.Skin
	if err := json.Unmarshal(w.Body.Bytes(), &skins); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(skins) != len(skin.All()) {
		t.Errorf("expected %d skins, got %d", len(skin.All()), len(skins))
	}

	w = do(t, s, httptest.NewRequest(http.MethodGet, "/skins/unknown", nil))
	var resolved skin.Skin
	if err := json.Unmarshal(w.Body.Bytes(), &resolved); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resolved.ID != skin.DefaultID {
		t.Errorf("expected fallback skin, got %q", resolved.ID)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer()
	if w := do(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil)); w.Code != http.StatusOK {
		t.Errorf("healthz returned %d", w.Code)
	}
	if w := do(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil)); w.Code != http.StatusOK {
		t.Errorf("metrics returned %d", w.Code)
	}
}
