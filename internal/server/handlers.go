package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/generator"
	"git.home.luguber.info/inful/oakdocs/internal/logfields"
	"git.home.luguber.info/inful/oakdocs/internal/nav"
	"git.home.luguber.info/inful/oakdocs/internal/version"
)

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Uptime  float64 `json:"uptime"`
	BuildID string  `json:"buildId,omitempty"`
}

// SidebarResponse is the /api/sidebar payload.
type SidebarResponse struct {
	Path   string      `json:"path"`
	Prefix string      `json:"prefix"`
	Groups []nav.Group `json:"groups"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: version.Version,
		Uptime:  time.Since(s.started).Seconds(),
	}
	if res, err := s.snapshot(); err == nil {
		resp.BuildID = res.BuildID
	}
	s.writeJSON(w, r, resp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		s.errs.WriteErrorResponse(w, r, foundation.NotFoundError("metrics are disabled").Build())
		return
	}
	s.metrics.ServeHTTP(w, r)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	res, err := s.snapshot()
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	s.writeJSON(w, r, res.Site)
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	res, err := s.snapshot()
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		s.errs.WriteErrorResponse(w, r, foundation.ValidationError("query parameter path is required").Build())
		return
	}
	groups, prefix, ok := res.Site.SidebarFor(path)
	if !ok {
		s.errs.WriteErrorResponse(w, r, foundation.NotFoundError("no sidebar for path").WithContext("path", path).Build())
		return
	}
	s.writeJSON(w, r, SidebarResponse{Path: nav.NormalizePath(path), Prefix: prefix, Groups: groups})
}

func (s *Server) handleHead(w http.ResponseWriter, r *http.Request) {
	res, err := s.snapshot()
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	markup, err := res.Site.Head.HTML()
	if err != nil {
		s.log.Error("Failed to render head", logfields.Error(err))
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, markup)
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	res, err := s.snapshot()
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	s.writeJSON(w, r, generator.Manifest(res.Theme))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	res, err := s.snapshot()
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	s.writeJSON(w, r, generator.NewReport(res, res.Elapsed))
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.errs.WriteErrorResponse(w, r, foundation.WrapError(err, foundation.CategoryInternal, "encode response").Build())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(append(b, '\n'))
}
