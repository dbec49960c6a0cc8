package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hirepipe/ats/internal/api/middleware"
	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

type stubJobService struct {
	listFn   func(ctx context.Context) ([]domain.Job, error)
	createFn func(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error)
	exportFn func(ctx context.Context, jobID int64) (*ports.ExportFile, error)
}

func (s *stubJobService) ListJobs(ctx context.Context) ([]domain.Job, error) { return s.listFn(ctx) }
func (s *stubJobService) CreateJob(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	return s.createFn(ctx, in)
}
func (s *stubJobService) ExportCandidates(ctx context.Context, jobID int64) (*ports.ExportFile, error) {
	return s.exportFn(ctx, jobID)
}

var managerIdentity = domain.Identity{ID: 10, Username: "maria", Role: domain.RoleManager}

func TestJobHandler_List(t *testing.T) {
	e := newTestEcho()
	handler := NewJobHandler(&stubJobService{listFn: func(context.Context) ([]domain.Job, error) {
		return []domain.Job{{ID: 1, Title: "SRE", ManagerID: 10}}, nil
	}})

	rec := httptest.NewRecorder()
	if err := handler.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/jobs", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var jobs []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(jobs) != 1 || jobs[0]["managerId"] != float64(10) || jobs[0]["title"] != "SRE" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestJobHandler_Create(t *testing.T) {
	e := newTestEcho()
	handler := NewJobHandler(&stubJobService{createFn: func(_ context.Context, in ports.CreateJobInput) (*domain.Job, error) {
		if in.ManagerID != managerIdentity.ID || in.Title != "SRE" {
			t.Fatalf("unexpected input: %+v", in)
		}
		return &domain.Job{ID: 2, Title: in.Title, Description: in.Description, Requirements: in.Requirements, ManagerID: in.ManagerID}, nil
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/jobs", `{"title":"SRE","description":"ops","requirements":"linux"}`), rec)
	middleware.SetIdentity(c, managerIdentity)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJobHandler_Create_ValidationFields(t *testing.T) {
	e := newTestEcho()
	handler := NewJobHandler(&stubJobService{createFn: func(context.Context, ports.CreateJobInput) (*domain.Job, error) {
		t.Fatalf("should not be called")
		return nil, nil
	}})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/jobs", `{"title":"  ","description":"ops"}`), httptest.NewRecorder())
	middleware.SetIdentity(c, managerIdentity)

	err := handler.Create(c)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got := map[string]bool{}
	for _, f := range verr.Fields {
		got[f.Field] = true
	}
	if !got["title"] || !got["requirements"] || got["description"] {
		t.Fatalf("unexpected fields: %+v", verr.Fields)
	}
}

func TestJobHandler_Export(t *testing.T) {
	e := newTestEcho()
	handler := NewJobHandler(&stubJobService{exportFn: func(_ context.Context, jobID int64) (*ports.ExportFile, error) {
		if jobID != 7 {
			t.Fatalf("unexpected job id %d", jobID)
		}
		return &ports.ExportFile{Filename: "candidates-7.xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Data: []byte("PK")}, nil
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/jobs/7/export", nil), rec)
	c.SetParamNames("jobId")
	c.SetParamValues("7")

	if err := handler.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get(echo.HeaderContentDisposition) != `attachment; filename="candidates-7.xlsx"` {
		t.Fatalf("unexpected disposition %q", rec.Header().Get(echo.HeaderContentDisposition))
	}
	if rec.Header().Get(echo.HeaderContentType) != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
	}
	if rec.Body.String() != "PK" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestJobHandler_Export_BadID(t *testing.T) {
	e := newTestEcho()
	handler := NewJobHandler(&stubJobService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/jobs/abc/export", nil), httptest.NewRecorder())
	c.SetParamNames("jobId")
	c.SetParamValues("abc")

	var he *echo.HTTPError
	if err := handler.Export(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
