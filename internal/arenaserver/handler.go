// internal/arenaserver/handler.go
package arenaserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/mwiater/arenaboard/internal/leaderboard"
)

// ErrResp is the body of every error response.
type ErrResp struct {
	Error string `json:"error"`
}

type resultsBody struct {
	CompetitionInfo map[string]leaderboard.CompetitionInfo `json:"competition_info"`
	Results         map[string][]leaderboard.QuestionRow   `json:"results"`
}

// Server serves a fixed set of payloads.
type Server struct {
	payloads Payloads
}

// NewHandler returns the arena API routes for p.
func NewHandler(p Payloads) http.Handler {
	s := &Server{payloads: p}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("GET /secondary", s.handleSecondary)
	mux.HandleFunc("GET /competition_dates", s.handleDates)
	mux.HandleFunc("GET /traces/{competition}/{model}/{task}", s.handleTrace)
	return mux
}

func (s *Server) handleResults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, resultsBody{CompetitionInfo: s.payloads.Info, Results: s.payloads.Results})
}

func (s *Server) handleSecondary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.payloads.Secondary)
}

func (s *Server) handleDates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.payloads.Dates)
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	competition := r.PathValue("competition")
	model := r.PathValue("model")

	if _, ok := s.payloads.Results[competition]; !ok {
		writeJSON(w, http.StatusNotFound, ErrResp{Error: "competition not found"})
		return
	}
	task, err := strconv.Atoi(r.PathValue("task"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrResp{Error: "trace not found"})
		return
	}
	rec, ok := s.payloads.Traces[TraceKey{Competition: competition, Model: model, Task: task}]
	if !ok {
		log.Printf("trace miss: competition=%s model=%s task=%d", competition, model, task)
		writeJSON(w, http.StatusNotFound, ErrResp{Error: "trace not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
