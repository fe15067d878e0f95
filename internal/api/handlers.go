package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/planline/planline/pkg/errors"
	"github.com/planline/planline/pkg/gen"
	"github.com/planline/planline/pkg/history"
	"github.com/planline/planline/pkg/layout"
	"github.com/planline/planline/pkg/pipeline"
)

// defaultListLimit caps /v1/runs responses when no limit is given.
const defaultListLimit = 50

// checkResponse is the body of POST /v1/check.
type checkResponse struct {
	Report layout.Report `json:"report"`
}

// handleCheck validates a layout body and reports its planarity.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	l, err := layout.ReadJSON(r.Body)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{Report: l.Report()})
}

// dictSection is one dictionary entry in a generate request.
type dictSection struct {
	Point      string   `json:"point"`
	Connectors []string `json:"connectors"`
}

// generateRequest is the body of POST /v1/generate.
type generateRequest struct {
	Dictionary []dictSection `json:"dictionary"`
	Roots      []string      `json:"roots"`
	Lenient    bool          `json:"lenient"`
	NoOptimize bool          `json:"no_optimize"`
	MaxSteps   int           `json:"max_steps"`
	Refresh    bool          `json:"refresh"`
}

// generateResponse is the body of a successful generate call.
type generateResponse struct {
	RunID  string         `json:"run_id,omitempty"`
	Layout *layout.Layout `json:"layout"`
	Report layout.Report  `json:"report"`
	Steps  int            `json:"steps"`
	Unmet  int            `json:"unmet"`
	Cached bool           `json:"cached"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	dict := gen.NewDictionary()
	for _, ds := range req.Dictionary {
		section := gen.Section{Point: ds.Point}
		for _, typ := range ds.Connectors {
			section.Connectors = append(section.Connectors, gen.Connector{Type: typ})
		}
		if err := dict.Add(section); err != nil {
			writeError(w, s.logger, err)
			return
		}
	}

	roots, err := pipeline.ParseRoots(req.Roots)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Dict:       dict,
		Roots:      roots,
		Lenient:    req.Lenient,
		NoOptimize: req.NoOptimize,
		MaxSteps:   req.MaxSteps,
		Formats:    []string{pipeline.FormatJSON},
		Refresh:    req.Refresh,
		SaveRun:    s.history != nil,
		Logger:     s.logger,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	resp := generateResponse{
		Layout: result.Layout,
		Report: result.Report,
		Steps:  result.Steps,
		Unmet:  result.Unmet,
		Cached: result.CacheInfo.GenerateHit,
	}
	if result.RunID != uuid.Nil {
		resp.RunID = result.RunID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// listRunsResponse is the body of GET /v1/runs.
type listRunsResponse struct {
	Runs []*history.Run `json:"runs"`
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, listRunsResponse{Runs: []*history.Run{}})
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, s.logger, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	runs, err := s.history.List(r.Context(), limit)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if runs == nil {
		runs = []*history.Run{}
	}
	writeJSON(w, http.StatusOK, listRunsResponse{Runs: runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid run id"))
		return
	}
	if s.history == nil {
		writeError(w, s.logger, errors.New(errors.ErrCodeRunNotFound, "run not found: %s", id))
		return
	}

	run, err := s.history.Get(r.Context(), id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
