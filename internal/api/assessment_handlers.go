package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/terra-clan/resilience-scorecard/internal/models"
	"github.com/terra-clan/resilience-scorecard/internal/report"
	"github.com/terra-clan/resilience-scorecard/internal/scoring"
	"github.com/terra-clan/resilience-scorecard/internal/validation"
	"github.com/terra-clan/resilience-scorecard/pkg/delivery"
)

// Request and response bodies. A missing or null selectedKeys means no
// selection step took place; an empty list is an explicit empty selection.

type questionsRequest struct {
	SelectedKeys []models.SelectionKey `json:"selectedKeys"`
}

type scoreRequest struct {
	SelectedKeys []models.SelectionKey `json:"selectedKeys"`
	Answers      map[string]string     `json:"answers"`
}

type submitRequest struct {
	Email        string                `json:"email"`
	SelectedKeys []models.SelectionKey `json:"selectedKeys"`
	Answers      map[string]string     `json:"answers"`
}

type scoreResponse struct {
	models.ScoreResult
	Band scoring.Band `json:"band"`
}

type deliveryStatus struct {
	Sent      bool   `json:"sent"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Retryable bool   `json:"retryable"`
}

type submitResponse struct {
	SubmissionID string         `json:"submissionId"`
	Result       scoreResponse  `json:"result"`
	Delivery     deliveryStatus `json:"delivery"`
}

// Assessment handlers

func (s *Server) handleSelectQuestions(w http.ResponseWriter, r *http.Request) {
	var req questionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cat := CatalogFromContext(r.Context())
	sel, err := validation.CheckSelectionKeys(cat, req.SelectedKeys)
	if err != nil {
		respondValidation(w, err)
		return
	}

	questions := scoring.SelectQuestions(cat, sel)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"total":     len(questions),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cat := CatalogFromContext(r.Context())
	sel, err := validation.CheckSelectionKeys(cat, req.SelectedKeys)
	if err != nil {
		respondValidation(w, err)
		return
	}

	answers, err := validation.ValidateAnswers(cat, req.Answers)
	if err != nil {
		respondValidation(w, err)
		return
	}

	respondJSON(w, http.StatusOK, score(cat, sel, answers))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cat := CatalogFromContext(r.Context())

	email, err := validation.ValidateEmail(req.Email, s.emailOpts...)
	if err != nil {
		respondValidation(w, err)
		return
	}

	sel, err := validation.ValidateSelection(cat, req.SelectedKeys)
	if err != nil {
		respondValidation(w, err)
		return
	}

	answers, err := validation.ValidateAnswers(cat, req.Answers)
	if err != nil {
		respondValidation(w, err)
		return
	}

	result := score(cat, sel, answers)
	id := uuid.NewString()

	payload, err := report.Build(email, cat.Version, result.ScoreResult)
	if err != nil {
		slog.Error("failed to build report", "submission_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to build report")
		return
	}

	resp := submitResponse{
		SubmissionID: id,
		Result:       result,
		Delivery:     s.deliver(r, id, payload),
	}

	respondJSON(w, http.StatusOK, resp)
}

// deliver sends the report and turns the outcome into a status the UI can
// show next to the results, with a retry button when it makes sense.
func (s *Server) deliver(r *http.Request, id string, payload models.ReportPayload) deliveryStatus {
	receipt, err := s.deliverer.Send(r.Context(), payload)
	if err == nil {
		slog.Info("report submitted",
			"submission_id", id,
			"request_id", middleware.GetReqID(r.Context()),
			"score", payload.Score,
		)
		return deliveryStatus{Sent: true, Message: receipt.Message}
	}

	slog.Warn("report delivery failed",
		"submission_id", id,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)

	status := deliveryStatus{Error: err.Error(), Retryable: true}
	var de *delivery.DeliveryError
	if errors.As(err, &de) {
		status.Kind = string(de.Kind)
		status.Retryable = de.Retryable()
	}
	return status
}

func score(cat *models.Catalog, sel models.Selection, answers models.Answers) scoreResponse {
	result := scoring.Score(cat, sel, answers)
	return scoreResponse{
		ScoreResult: result,
		Band:        scoring.BandFor(result.FinalScore),
	}
}
