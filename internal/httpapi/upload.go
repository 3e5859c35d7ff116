package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/shortreel/internal/watcher"
)

// attachVoiceover accepts a multipart upload in the "file" field, stages it
// and hands it to the coordinator, which keeps its own copy.
func (h *Handler) attachVoiceover(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "multipart field \"file\" is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !watcher.IsAudioFile(header.Filename) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unsupported audio format %q", ext)})
		return
	}

	staged, err := h.stage(file, ext)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer os.Remove(staged)

	p, err := h.coord.AttachVoiceover(r.Context(), id, staged)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) stage(src io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(h.uploadDir, "upload-"+uuid.NewString()+ext)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("stage upload: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("stage upload: %w", err)
	}
	return path, nil
}
