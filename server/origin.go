package server

import (
	"net/http"
)

// The status page is served on loopback only, and browsers do not send
// an Origin header for plain same-origin GET navigation. Anything that
// does carry an Origin must match exactly what we expect for that
// path, which shuts out cross-site POSTs to the log download.

type originChecker struct {
	handler http.Handler
	allowed map[string]string
}

const (
	originHeader      string = "Origin"
	frameOriginHeader string = "X-Frame-Options"
)

func (o *originChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get(originHeader)
	path := r.URL.Path

	if o.allowed[path] != origin {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.Header().Set(frameOriginHeader, "DENY")
	o.handler.ServeHTTP(w, r)
}

func originCheck(allowed map[string]string) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return &originChecker{
			allowed: allowed,
			handler: h,
		}
	}
}
