// Package endpoints serves the scheduler's http ops surface: a health check
// and a metrics snapshot.
package endpoints

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/sparrowdev/sparrow/common/stats"
)

func NewOpsServer(addr string, stat stats.StatsReceiver) *OpsServer {
	s := &OpsServer{
		Addr:  addr,
		Stats: stat,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("/", helpHandler)
	s.mux.HandleFunc("/health", healthHandler)
	s.mux.HandleFunc("/admin/metrics.json", s.statsHandler)
	return s
}

type OpsServer struct {
	Addr  string
	Stats stats.StatsReceiver
	mux   *http.ServeMux
}

func (s *OpsServer) Serve() error {
	log.Info("Serving http & stats on ", s.Addr)
	return http.ListenAndServe(s.Addr, s.mux)
}

// Handler exposes the mux for serving on an externally managed listener.
func (s *OpsServer) Handler() http.Handler {
	return s.mux
}

func helpHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Common paths: '/health', '/admin/metrics.json'", 501)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "ok")
}

func (s *OpsServer) statsHandler(w http.ResponseWriter, r *http.Request) {
	const contentTypeHdr = "Content-Type"
	const contentTypeVal = "application/json; charset=utf-8"
	w.Header().Set(contentTypeHdr, contentTypeVal)

	pretty := r.URL.Query().Get("pretty") == "true"
	str := s.Stats.Render(pretty)
	if _, err := io.Copy(w, bytes.NewBuffer(str)); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
}
