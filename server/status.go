package server

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"github.com/midimap/tsidump/dcdt"
	"github.com/midimap/tsidump/memorywriter"
	"github.com/midimap/tsidump/report"
)

// The status page lives on /status/: the decoded mapping table, the
// summary counts and the short log inline, the full detailed log as a
// gzip download, and the JSON report for copy-pasting elsewhere.

type status struct {
	result      *dcdt.Result
	source      string
	version     string
	shortWriter *memorywriter.MemoryWriter
	longWriter  *memorywriter.MemoryWriter
}

const csrfkey = "yq83hf4fl1900siq7shjdkeuf85rj27d"

func serveStatusRedirect(r *mux.Router) {
	r.HandleFunc("/", redirect)
	r.Use(originCheck(map[string]string{
		"": "",
	}))
}

func redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "http://"+addr+"/status/", http.StatusMovedPermanently)
}

func serveStatus(r *mux.Router, result *dcdt.Result, source, version string, mw, dmw *memorywriter.MemoryWriter) {
	s := &status{
		result:      result,
		source:      source,
		version:     version,
		shortWriter: mw,
		longWriter:  dmw,
	}
	r.Methods("GET").Path("/").HandlerFunc(s.statusPage)
	r.Methods("GET").Path("/mappings.json").HandlerFunc(s.mappingsJSON)
	r.Methods("POST").Path("/log.gz").HandlerFunc(s.statusGzip)

	r.Use(csrf.Protect([]byte(csrfkey), csrf.Secure(false)))
	r.Use(originCheck(map[string]string{
		"/status/":              "",
		"/status/mappings.json": "",
		"/status/log.gz":        "http://" + addr,
	}))
}

func (s *status) statusPage(w http.ResponseWriter, r *http.Request) {
	s.longWriter.Log("server - building status page")

	log, err := s.shortWriter.String(s.version + "\n")
	if err != nil {
		respondError(w, err)
		return
	}

	data := newStatusData(s.result, s.source, s.version, log, csrf.TemplateField(r))
	err = statusTemplate.Execute(w, data)
	if err != nil {
		respondError(w, err)
		return
	}
}

func (s *status) mappingsJSON(w http.ResponseWriter, r *http.Request) {
	s.longWriter.Log("server - writing mappings.json")

	w.Header().Set("Content-Type", "application/json")
	err := report.WriteJSON(w, s.result)
	if err != nil {
		s.longWriter.Log("server - json err " + err.Error())
	}
}

func (s *status) statusGzip(w http.ResponseWriter, r *http.Request) {
	s.longWriter.Log("server - building gzip")

	gz, err := s.longWriter.Gzip(s.version + "\n" + s.source + "\n\nCurrent log:\n")
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/gzip")

	_, err = w.Write(gz)
	if err != nil {
		respondError(w, err)
		return
	}
}

func respondError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
}
