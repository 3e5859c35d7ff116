// Package httpapi exposes the pipeline coordinator over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/shortreel/internal/logger"
	"github.com/nguyentantai21042004/shortreel/internal/media"
	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/internal/pipeline"
)

// maxUploadBytes bounds voiceover uploads.
const maxUploadBytes = 200 << 20

// Handler serves the project API.
type Handler struct {
	coord     pipeline.Coordinator
	logger    logger.Logger
	uploadDir string
}

// New creates a Handler. Uploaded voiceovers are staged in uploadDir.
func New(coord pipeline.Coordinator, uploadDir string, log logger.Logger) *Handler {
	return &Handler{coord: coord, uploadDir: uploadDir, logger: log.Named("http")}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("POST /projects", h.createProject)
	mux.HandleFunc("GET /projects/{id}", h.getProject)
	mux.HandleFunc("POST /projects/{id}/voiceover", h.attachVoiceover)
	mux.HandleFunc("POST /projects/{id}/images", h.acquireImages)
	mux.HandleFunc("POST /projects/{id}/render", h.render)
	return mux
}

type createProjectRequest struct {
	Topic       string               `json:"topic"`
	AspectRatio string               `json:"aspectRatio"`
	Script      []models.ScriptScene `json:"script"`
}

type errorResponse struct {
	Error         string   `json:"error"`
	MissingScenes []string `json:"missingScenes,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	p, err := h.coord.CreateProject(r.Context(), req.Topic, req.AspectRatio, req.Script)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.coord.Project(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) acquireImages(w http.ResponseWriter, r *http.Request) {
	resp, err := h.coord.AcquireImages(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// render answers 200 for both successful and failed encodes; the body's
// success flag tells them apart.
func (h *Handler) render(w http.ResponseWriter, r *http.Request) {
	resp, err := h.coord.Render(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var pre *pipeline.PreconditionError
	switch {
	case errors.As(err, &pre):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), MissingScenes: pre.MissingScenes})
	case errors.Is(err, pipeline.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, pipeline.ErrBusy):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, pipeline.ErrInvalidInput), errors.Is(err, media.ErrAudioMissing):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, pipeline.ErrNoImageService):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.logger.Error(r.Context(), "%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
