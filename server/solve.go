package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"q.log/twophase/instance"
	"q.log/twophase/simplex"
)

const (
	solvePath = "/solve"

	contentType     = "Content-Type"
	requestIDHeader = "X-Request-Id"
	applicationJSON = "application/json"

	maxBodyBytes = 1 << 20
)

// mediaTypes maps accepted request content types to problem formats.
var mediaTypes = map[string]instance.Format{
	"text/plain":         instance.FormatLP,
	"application/x-yaml": instance.FormatYAML,
	"application/yaml":   instance.FormatYAML,
}

// Handler serves the solve endpoint.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(solvePath, h.handleSolve).Methods(http.MethodPost)
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
}

// handleSolve accepts an LP-language (text/plain) or YAML problem and
// answers with a JSON simplex.Report. LP-language solutions are reported
// over the declared variables.
func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := uuid.Must(uuid.NewV7()).String()
	w.Header().Set(requestIDHeader, id)
	logger := h.logger.With("request_id", id)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get(contentType))
	format, ok := mediaTypes[mediaType]
	if err != nil || !ok {
		logger.Warn("unsupported media type", "content_type", r.Header.Get(contentType))
		writeError(w, http.StatusUnsupportedMediaType, id, "unsupported media type: use text/plain or application/x-yaml")
		return
	}

	problem, err := instance.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes), format)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		logger.Info("rejected problem", "error", err)
		writeError(w, status, id, err.Error())
		return
	}

	res, err := simplex.TwoPhase(problem.Model, simplex.WithLogger(logger))
	if err != nil {
		logger.Error("solve failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, id, err.Error())
		return
	}

	report := simplex.NewReport(res)
	if problem.Recovery != nil {
		report, err = report.Recovered(problem.Recovery)
		if err != nil {
			logger.Error("solution recovery failed", "error", err)
			writeError(w, http.StatusInternalServerError, id, err.Error())
			return
		}
	}

	logger.Info("solved",
		"result", report.ResultType,
		"rows", problem.Model.NumRows(),
		"cols", problem.Model.NumCols(),
		"duration", time.Since(start),
	)
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(contentType, applicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, id, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: id})
}
