package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/midimap/tsidump/dcdt"
	"github.com/midimap/tsidump/memorywriter"
)

// Package server exposes a decode result on a local status page, so
// the mapping table can be read in a browser next to Traktor while
// testing. Bound to loopback only; nothing here is meant to be
// reachable from elsewhere.

const addr = "127.0.0.1:21335"

type Server struct {
	*http.Server

	writer io.Writer
}

func New(
	result *dcdt.Result,
	source string,
	stderrWriter io.Writer,
	shortWriter *memorywriter.MemoryWriter,
	longWriter *memorywriter.MemoryWriter,
	version string,
) (*Server, error) {
	longWriter.Log("server - starting")

	allWriter := io.MultiWriter(stderrWriter, shortWriter, longWriter)
	s := &Server{
		Server: &http.Server{Addr: addr},
		writer: allWriter,
	}

	r := mux.NewRouter()
	statusRouter := r.PathPrefix("/status").Subrouter()
	redirectRouter := r.Methods("GET").Path("/").Subrouter()

	serveStatus(statusRouter, result, source, version, shortWriter, longWriter)
	serveStatusRedirect(redirectRouter)

	var h http.Handler = r

	// Log after the request is done, in the Apache format.
	h = handlers.LoggingHandler(allWriter, h)
	// Log when the request is received.
	h = s.logRequest(h)

	s.Handler = h

	longWriter.Log("server - created")
	return s, nil
}

func (s *Server) logRequest(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text := fmt.Sprintf("%s %s\n", r.Method, r.URL)
		_, err := s.writer.Write([]byte(text))
		if err != nil {
			// give up, just print on stdout
			fmt.Println(err)
		}
		handler.ServeHTTP(w, r)
	})
}

func (s *Server) Run() error {
	return s.ListenAndServe()
}
