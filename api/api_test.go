package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/flightrack/track-server/api/model"
	"github.com/flightrack/track-server/export"
	"github.com/flightrack/track-server/xmpp"
)

func testServer(t *testing.T) (*mux.Router, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := export.NewStore(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return InitServer(false, store, &xmpp.Xmpp{}), dir
}

func predictRequest(t *testing.T, csv string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	file, err := form.CreateFormFile("samples", "samples.csv")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := file.Write([]byte(csv)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for name, value := range fields {
		form.WriteField(name, value)
	}
	form.Close()

	req := httptest.NewRequest("POST", "/track/api/v1/predict", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	router, _ := testServer(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/track/-/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("healthz = %d; want 200", w.Code)
	}
}

func TestPredict(t *testing.T) {
	router, _ := testServer(t)

	req := predictRequest(t, "groundspeed,heading\n120,90\n120,90\n",
		map[string]string{"lat": "0.0", "lon": "0.0", "interval": "1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("predict = %d, body %s; want 200", w.Code, w.Body.String())
	}

	var prediction model.Prediction
	if err := json.Unmarshal(w.Body.Bytes(), &prediction); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(prediction.Points) != 3 {
		t.Errorf("points = %d; want 3", len(prediction.Points))
	}
	if prediction.Points[0].Lat != 0 || prediction.Points[0].Lon != 0 || prediction.Points[0].Step != 1 {
		t.Errorf("points[0] = %v; want {0 0 1}", prediction.Points[0])
	}
	if prediction.Final.Lon <= 0 {
		t.Errorf("final lon = %f; want east of the start", prediction.Final.Lon)
	}
	if prediction.GeoJSON == nil || len(prediction.GeoJSON.Features) != 4 {
		t.Errorf("geojson features missing or wrong count")
	}

	// the announced exports must be downloadable
	for _, url := range []string{prediction.CSV, prediction.KML} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", url, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d; want 200", url, w.Code)
		}
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest("GET", prediction.CSV, nil))
	if !strings.HasPrefix(w2.Body.String(), "latitude,longitude,name\n") {
		t.Errorf("csv export body = %q", w2.Body.String())
	}
	if got := w2.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("csv content type = %q; want text/csv", got)
	}
}

func TestPredictEmptySamples(t *testing.T) {
	router, _ := testServer(t)

	req := predictRequest(t, "groundspeed,heading\n",
		map[string]string{"lat": "12.5", "lon": "-3.25"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("predict = %d; want 200", w.Code)
	}
	var prediction model.Prediction
	if err := json.Unmarshal(w.Body.Bytes(), &prediction); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(prediction.Points) != 1 {
		t.Errorf("points = %d; want 1", len(prediction.Points))
	}
	if prediction.Final.Lat != 12.5 || prediction.Final.Lon != -3.25 {
		t.Errorf("final = %v; want {12.5 -3.25}", prediction.Final)
	}
}

func TestPredictMissingColumns(t *testing.T) {
	router, dir := testServer(t)

	req := predictRequest(t, "speed,track\n120,90\n", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("predict = %d; want 400", w.Code)
	}
	var e model.Error
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !strings.Contains(e.Error, "groundspeed") || !strings.Contains(e.Error, "heading") {
		t.Errorf("error = %q; want both missing columns named", e.Error)
	}

	// a failed run must not leave export files behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("export dir entries = %d; want 0", len(entries))
	}
}

func TestPredictInvalidRow(t *testing.T) {
	router, _ := testServer(t)

	req := predictRequest(t, "groundspeed,heading\n120,90\nN/A,91\n", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("predict = %d; want 400", w.Code)
	}
	var e model.Error
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !strings.Contains(e.Error, "row 1") {
		t.Errorf("error = %q; want the bad row index", e.Error)
	}
}

func TestPredictBadInterval(t *testing.T) {
	router, _ := testServer(t)

	for _, interval := range []string{"0", "-1", "abc"} {
		req := predictRequest(t, "groundspeed,heading\n120,90\n",
			map[string]string{"interval": interval})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("predict with interval %q = %d; want 400", interval, w.Code)
		}
	}
}

func TestPredictMissingFile(t *testing.T) {
	router, _ := testServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	form.WriteField("lat", "0")
	form.Close()

	req := httptest.NewRequest("POST", "/track/api/v1/predict", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("predict = %d; want 400", w.Code)
	}
}

func TestDownloadUnknownRun(t *testing.T) {
	router, _ := testServer(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/track/api/v1/exports/nope/predicted_trajectory.csv", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("download = %d; want 404", w.Code)
	}
}
