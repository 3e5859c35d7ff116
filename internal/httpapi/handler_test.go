package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/shortreel/internal/logger"
	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/internal/pipeline"
)

type fakeCoordinator struct {
	createErr error
	getErr    error
	renderErr error
	render    *pipeline.RenderResponse
	attached  string
	attachErr error
}

func (f *fakeCoordinator) CreateProject(ctx context.Context, topic, aspect string, script []models.ScriptScene) (*models.Project, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Project{ID: "p1", Topic: topic, AspectRatio: aspect, Status: models.StatusDraft, Script: script}, nil
}

func (f *fakeCoordinator) AttachVoiceover(ctx context.Context, id, audioPath string) (*models.Project, error) {
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, err
	}
	f.attached = string(data)
	return &models.Project{ID: id, Status: models.StatusVoiceoverUploaded}, nil
}

func (f *fakeCoordinator) AcquireImages(ctx context.Context, id string) (*pipeline.ImagesResponse, error) {
	return nil, pipeline.ErrNoImageService
}

func (f *fakeCoordinator) Render(ctx context.Context, id string) (*pipeline.RenderResponse, error) {
	return f.render, f.renderErr
}

func (f *fakeCoordinator) Project(ctx context.Context, id string) (*models.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.Project{ID: id}, nil
}

func (f *fakeCoordinator) RecoverInterrupted(ctx context.Context) (int, error) {
	return 0, nil
}

func serve(t *testing.T, coord pipeline.Coordinator, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	New(coord, t.TempDir(), logger.Nop()).Routes().ServeHTTP(rec, req)
	return rec
}

func TestCreateProject(t *testing.T) {
	body := `{"topic":"octopus","aspectRatio":"1:1","script":[{"id":"s1","text":"hi"}]}`
	rec := serve(t, &fakeCoordinator{}, httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var p models.Project
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Topic != "octopus" || p.AspectRatio != "1:1" || len(p.Script) != 1 {
		t.Errorf("project = %+v", p)
	}
}

func TestErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		coord  *fakeCoordinator
		method string
		path   string
		body   string
		want   int
	}{
		{name: "bad json", coord: &fakeCoordinator{}, method: http.MethodPost, path: "/projects", body: "{", want: http.StatusBadRequest},
		{name: "invalid input", coord: &fakeCoordinator{createErr: pipeline.ErrInvalidInput}, method: http.MethodPost, path: "/projects", body: "{}", want: http.StatusBadRequest},
		{name: "not found", coord: &fakeCoordinator{getErr: pipeline.ErrNotFound}, method: http.MethodGet, path: "/projects/x", want: http.StatusNotFound},
		{name: "busy", coord: &fakeCoordinator{renderErr: pipeline.ErrBusy}, method: http.MethodPost, path: "/projects/x/render", want: http.StatusConflict},
		{name: "no image service", coord: &fakeCoordinator{}, method: http.MethodPost, path: "/projects/x/images", want: http.StatusServiceUnavailable},
		{name: "internal", coord: &fakeCoordinator{getErr: errors.New("disk on fire")}, method: http.MethodGet, path: "/projects/x", want: http.StatusInternalServerError},
		{name: "wrong method", coord: &fakeCoordinator{}, method: http.MethodDelete, path: "/projects/x", want: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if rec := serve(t, tt.coord, req); rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestRenderPrecondition(t *testing.T) {
	coord := &fakeCoordinator{renderErr: &pipeline.PreconditionError{ProjectID: "x", Reason: "scenes missing images", MissingScenes: []string{"s2"}}}
	rec := serve(t, coord, httptest.NewRequest(http.MethodPost, "/projects/x/render", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.MissingScenes) != 1 || body.MissingScenes[0] != "s2" {
		t.Errorf("missingScenes = %v", body.MissingScenes)
	}
}

func TestRenderFailureIsOK(t *testing.T) {
	coord := &fakeCoordinator{render: &pipeline.RenderResponse{ProjectID: "x", Success: false, Error: "ffmpeg encode failed"}}
	rec := serve(t, coord, httptest.NewRequest(http.MethodPost, "/projects/x/render", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func multipartVoiceover(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte(content))
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/projects/p1/voiceover", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAttachVoiceoverUpload(t *testing.T) {
	coord := &fakeCoordinator{}
	rec := serve(t, coord, multipartVoiceover(t, "take1.mp3", "audio-bytes"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if coord.attached != "audio-bytes" {
		t.Errorf("coordinator saw %q", coord.attached)
	}
}

func TestAttachVoiceoverRejectsFormat(t *testing.T) {
	rec := serve(t, &fakeCoordinator{}, multipartVoiceover(t, "take1.txt", "x"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
