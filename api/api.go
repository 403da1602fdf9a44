package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/flightrack/track-server/api/model"
	"github.com/flightrack/track-server/export"
	"github.com/flightrack/track-server/latlon"
	"github.com/flightrack/track-server/track"
	"github.com/flightrack/track-server/xmpp"
)

const (
	csvExport = "predicted_trajectory.csv"
	kmlExport = "predicted_trajectory.kml"
)

type server struct {
	cpuprofile bool
	store      *export.Store
	x          *xmpp.Xmpp
	predictor  track.Predictor
}

func InitServer(cpuprofile bool, store *export.Store, x *xmpp.Xmpp) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := server{
		cpuprofile: cpuprofile,
		store:      store,
		x:          x,
		predictor:  track.NewPredictor(),
	}

	router.HandleFunc("/track/-/healthz", s.healthz).Methods(http.MethodGet)
	router.HandleFunc("/", s.index).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/track/api/v1").Subrouter()
	apiV1.HandleFunc("/predict", s.predict).Methods("POST")
	apiV1.HandleFunc("/exports/{run}/{file}", s.download).Methods("GET")

	return router
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	json.NewEncoder(w).Encode(health{Status: "Ok"})
}

func (s *server) predict(w http.ResponseWriter, req *http.Request) {
	if s.cpuprofile {
		defer profile.Start().Stop()
	}

	fields := log.Fields{
		"action": "predict",
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	requestLogger := log.WithFields(fields)

	if err := req.ParseMultipartForm(32 << 20); err != nil {
		badRequest(w, "cannot parse form: "+err.Error())
		return
	}

	file, _, err := req.FormFile("samples")
	if err != nil {
		badRequest(w, "missing samples file")
		return
	}
	defer file.Close()

	lat, err := formFloat(req, "lat", 0)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	lon, err := formFloat(req, "lon", 0)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	interval, err := formFloat(req, "interval", 1)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if interval <= 0 {
		badRequest(w, "interval must be positive")
		return
	}

	samples, err := track.ReadSamples(file)
	if err != nil {
		requestLogger.Infof("Predict rejected: %v", err)
		badRequest(w, err.Error())
		return
	}

	start := time.Now()

	trajectory := s.predictor.Predict(latlon.LatLon{Lat: lat, Lon: lon}, samples, interval)

	run := uuid.New().String()
	if err := s.storeExports(run, trajectory); err != nil {
		requestLogger.Warnf("store exports: %v", err)
		http.Error(w, "cannot store exports", http.StatusInternalServerError)
		return
	}

	delta := time.Now().Sub(start)
	requestLogger.Infof("Predict %d samples every %.2fs took %s", len(samples), interval, delta.String())

	final := trajectory.Final()
	go s.x.Send(fmt.Sprintf("predicted track %s: %d points, final position %f,%f",
		run, len(trajectory), final.Lat, final.Lon))

	json.NewEncoder(w).Encode(model.Prediction{
		Run:     run,
		Points:  trajectory,
		Final:   final.LatLon(),
		GeoJSON: export.GeoJSON(trajectory),
		CSV:     fmt.Sprintf("/track/api/v1/exports/%s/%s", run, csvExport),
		KML:     fmt.Sprintf("/track/api/v1/exports/%s/%s", run, kmlExport),
	})
}

func (s *server) storeExports(run string, trajectory track.Trajectory) error {
	var csvBuf, kmlBuf bytes.Buffer
	if err := export.WriteCSV(&csvBuf, trajectory); err != nil {
		return err
	}
	if err := export.WriteKML(&kmlBuf, trajectory); err != nil {
		return err
	}

	if err := s.store.Put(run, csvExport, csvBuf.Bytes()); err != nil {
		return err
	}
	return s.store.Put(run, kmlExport, kmlBuf.Bytes())
}

func (s *server) download(w http.ResponseWriter, req *http.Request) {
	run := mux.Vars(req)["run"]
	file := mux.Vars(req)["file"]

	data, err := s.store.Open(run, file)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	case strings.HasSuffix(file, ".csv"):
		w.Header().Set("Content-Type", "text/csv")
	case strings.HasSuffix(file, ".kml"):
		w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file))
	w.Write(data)
}

func (s *server) index(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func badRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(model.Error{Error: message})
}

func formFloat(req *http.Request, name string, missing float64) (float64, error) {
	value := req.FormValue(name)
	if value == "" {
		return missing, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return f, nil
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP := net.ParseIP(ip)
		if netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
