package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pragyesh/internauto/internal/bot"
)

// RunRequest represents the request body for POST /api/run.
type RunRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Headless bool   `json:"headless"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=20"`
}

// RunResponse represents the response for POST /api/run.
type RunResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// StatusResponse represents the response for GET /api/status/{id}.
type StatusResponse struct {
	JobID    string    `json:"job_id"`
	Status   Status    `json:"status"`
	Messages []Message `json:"messages"`
}

// handleRun starts a new automation run on its own worker goroutine.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.Limit == 0 {
		req.Limit = bot.DefaultLimit
	}

	jobID := uuid.New().String()
	s.registry.Create(jobID)

	log.Printf("Starting automation run %s with %d application limit", jobID, req.Limit)
	s.registry.Append(jobID, Message{
		Level:     "INFO",
		Message:   "Starting Internshala automation",
		Timestamp: time.Now().Format(timestampLayout),
	})

	opts := bot.Options{
		Email:    req.Email,
		Password: req.Password,
		Headless: req.Headless,
		Limit:    req.Limit,
		Sink: bot.SinkFunc(func(level, message string, at time.Time) {
			s.registry.Append(jobID, Message{
				Level:     level,
				Message:   message,
				Timestamp: at.Format(timestampLayout),
			})
		}),
	}

	go func() {
		result := s.runner(context.Background(), opts)
		if result.Success {
			s.registry.Complete(jobID, StatusCompleted)
			log.Printf("Run %s completed: %d applications submitted", jobID, result.SubmittedCount)
		} else {
			s.registry.Complete(jobID, StatusFailed)
			log.Printf("Run %s failed", jobID)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, RunResponse{JobID: jobID, Status: "started"})
}

// handleStatus returns the run status plus any buffered log lines, draining
// the buffer (the polling contract: each line is delivered once).
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	status, ok := s.registry.Status(jobID)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown job ID")
		return
	}

	messages := s.registry.Drain(jobID)
	if messages == nil {
		messages = []Message{}
	}
	s.jsonResponse(w, http.StatusOK, StatusResponse{
		JobID:    jobID,
		Status:   status,
		Messages: messages,
	})
}

// handleRunStream streams run events over SSE until the run completes or
// the client disconnects.
func (s *Server) handleRunStream(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	events, cancel, ok := s.registry.Subscribe(jobID)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown or finished job ID")
		return
	}
	defer cancel()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-events:
			if !open {
				status, _ := s.registry.Status(jobID)
				sse.WriteComplete(jobID, string(status))
				return
			}
			if err := sse.WriteEvent("log", msg); err != nil {
				return
			}
		}
	}
}

// handleHealth is the liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, code int, message string) {
	s.jsonResponse(w, code, map[string]string{"error": message})
}
