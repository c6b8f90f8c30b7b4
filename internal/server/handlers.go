package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/fiblike/internal/cache"
	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/engine"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/format"
	"github.com/agbru/fiblike/internal/logging"
	"github.com/agbru/fiblike/internal/sequence"
	"github.com/agbru/fiblike/internal/sysmon"
)

// TermResponse is the body of GET /term.
type TermResponse struct {
	N        uint64 `json:"n"`
	Seed     string `json:"seed"`
	Numeric  string `json:"numeric"`
	Value    string `json:"value"`
	Digits   int    `json:"digits"`
	Duration string `json:"duration"`
	Cached   bool   `json:"cached,omitempty"`
}

// FindResponse is the body of GET /find.
type FindResponse struct {
	Value    string `json:"value"`
	Seed     string `json:"seed"`
	Numeric  string `json:"numeric"`
	Position uint64 `json:"position"`
	Duration string `json:"duration"`
	Cached   bool   `json:"cached,omitempty"`
}

// ListResponse is the body of GET /list.
type ListResponse struct {
	Count    int      `json:"count"`
	Seed     string   `json:"seed"`
	Numeric  string   `json:"numeric"`
	Terms    []string `json:"terms"`
	Duration string   `json:"duration"`
	Cached   bool     `json:"cached,omitempty"`
}

// ErrorResponse is the body of every error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// computed is what the cache stores for any mode.
type computed struct {
	value    string
	position uint64
	terms    []string
	duration time.Duration
}

// request holds the parameters common to the computation endpoints.
type request struct {
	engine engine.Engine
	seed   engine.Seed
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.results.Stats()
	body := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"cache": map[string]any{
			"size":     stats.Size,
			"hits":     stats.Hits,
			"misses":   stats.Misses,
			"hit_rate": stats.HitRate(),
		},
	}
	if sys, err := sysmon.Sample(r.Context()); err == nil {
		body["system"] = sys
	} else {
		s.logger.Debug("host statistics unavailable", logging.Err(err))
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleNumerics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"numerics": s.factory.List()})
}

func (s *Server) handleTerm(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	n, ok := s.parseBounded(w, r, "n")
	if !ok {
		return
	}

	key := s.key(config.ModeTerm, req, strconv.FormatUint(n, 10))
	res, cached, err := s.compute(r.Context(), key, func(ctx context.Context) (computed, error) {
		v, err := req.engine.Term(ctx, req.seed, n, nil)
		return computed{value: v}, err
	})
	if err != nil {
		s.writeComputeError(w, err)
		return
	}
	s.logger.Debug("term computed",
		logging.Uint64("n", n),
		logging.Bool("cached", cached),
		logging.Float64("seconds", res.duration.Seconds()))
	writeJSON(w, http.StatusOK, TermResponse{
		N:        n,
		Seed:     req.seed.Key(),
		Numeric:  req.engine.Name(),
		Value:    res.value,
		Digits:   format.CountDigits(res.value),
		Duration: res.duration.String(),
		Cached:   cached,
	})
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("value")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing 'value' parameter")
		return
	}
	target, valid := new(big.Int).SetString(raw, 10)
	if !valid {
		writeError(w, http.StatusBadRequest, "invalid 'value' parameter: must be an integer")
		return
	}
	if req.seed.IsNegative() {
		writeError(w, http.StatusBadRequest, "find requires non-negative seeds")
		return
	}

	value := target.String()
	key := s.key(config.ModeFind, req, value)
	res, cached, err := s.compute(r.Context(), key, func(ctx context.Context) (computed, error) {
		pos, err := req.engine.Find(ctx, req.seed, value)
		return computed{position: pos}, err
	})
	if err != nil {
		s.writeComputeError(w, err)
		return
	}
	s.logger.Debug("value found",
		logging.Uint64("position", res.position),
		logging.Bool("cached", cached),
		logging.Float64("seconds", res.duration.Seconds()))
	writeJSON(w, http.StatusOK, FindResponse{
		Value:    value,
		Seed:     req.seed.Key(),
		Numeric:  req.engine.Name(),
		Position: res.position,
		Duration: res.duration.String(),
		Cached:   cached,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	count, ok := s.parseBounded(w, r, "count")
	if !ok {
		return
	}

	key := s.key(config.ModeList, req, strconv.FormatUint(count, 10))
	res, cached, err := s.compute(r.Context(), key, func(ctx context.Context) (computed, error) {
		terms, err := req.engine.Terms(ctx, req.seed, int(count))
		return computed{terms: terms}, err
	})
	if err != nil {
		s.writeComputeError(w, err)
		return
	}
	s.logger.Debug("terms listed",
		logging.Uint64("count", count),
		logging.Bool("cached", cached),
		logging.Float64("seconds", res.duration.Seconds()))
	writeJSON(w, http.StatusOK, ListResponse{
		Count:    int(count),
		Seed:     req.seed.Key(),
		Numeric:  req.engine.Name(),
		Terms:    res.terms,
		Duration: res.duration.String(),
		Cached:   cached,
	})
}

// parseRequest reads the seed and numeric parameters. It writes a 400 and
// returns false when they are invalid.
func (s *Server) parseRequest(w http.ResponseWriter, r *http.Request) (request, bool) {
	q := r.URL.Query()

	seed := engine.DefaultSeed
	if raw := q.Get("seed"); raw != "" {
		parsed, err := engine.ParseSeed(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return request{}, false
		}
		seed = parsed
	}

	numeric := q.Get("numeric")
	if numeric == "" {
		numeric = s.defaultNumeric()
	}
	e, err := s.factory.Get(numeric)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown numeric backend %q", numeric))
		return request{}, false
	}
	return request{engine: e, seed: seed}, true
}

// defaultNumeric is the configured backend, or the build default when the
// configuration selects all of them.
func (s *Server) defaultNumeric() string {
	if s.cfg.Numeric == "" || s.cfg.Numeric == "all" {
		return engine.DefaultNumeric
	}
	return s.cfg.Numeric
}

// parseBounded reads a positive integer parameter no larger than MaxNValue.
func (s *Server) parseBounded(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("missing '%s' parameter", name))
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid '%s' parameter: must be a positive integer", name))
		return 0, false
	}
	if v > s.security.MaxNValue {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("'%s' exceeds the maximum allowed value (%d)", name, s.security.MaxNValue))
		return 0, false
	}
	return v, true
}

func (s *Server) key(mode string, req request, arg string) cache.Key {
	return cache.Key{Mode: mode, Numeric: req.engine.Name(), Seed: req.seed.Key(), Argument: arg}
}

// compute returns the cached result for key, or runs fn under the request
// timeout and caches a successful result.
func (s *Server) compute(ctx context.Context, key cache.Key, fn func(context.Context) (computed, error)) (computed, bool, error) {
	if res, ok := s.results.Get(key); ok {
		recordCacheLookup(true)
		return res, true, nil
	}
	recordCacheLookup(false)

	ctx, cancel := context.WithTimeout(ctx, s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	res, err := fn(ctx)
	res.duration = time.Since(start)
	if err != nil {
		return computed{}, false, err
	}
	s.results.Add(key, res)
	return res, false, nil
}

// writeComputeError maps an engine error to a status code.
func (s *Server) writeComputeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sequence.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case apperrors.IsInputError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "computation timed out")
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request canceled")
	default:
		s.logger.Error("computation failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
