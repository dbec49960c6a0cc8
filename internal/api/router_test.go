package api_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hirepipe/ats/internal/api"
	"github.com/hirepipe/ats/internal/api/handler"
	"github.com/hirepipe/ats/internal/board"
	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/service"
	"github.com/hirepipe/ats/internal/infrastructure/db/sqldb"
	"github.com/hirepipe/ats/internal/infrastructure/export"
	"github.com/hirepipe/ats/internal/pkg/password"
	"github.com/hirepipe/ats/internal/client"
)

// newTestServer runs the full stack on a temp SQLite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", filepath.Join(t.TempDir(), "ats.db"))
	db, err := sqldb.Connect(ctx, sqldb.Config{Driver: sqldb.DriverSQLite, URL: dsn, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	users := sqldb.NewUserRepository(db)
	jobs := sqldb.NewJobRepository(db)
	candidates := sqldb.NewCandidateRepository(db)

	svc := api.Services{
		Auth:       service.NewAuthService(users, password.Scrypt{}, log),
		Sessions:   service.NewSessionService(sqldb.NewSessionStore(db), "test-secret", time.Hour, log),
		Jobs:       service.NewJobService(jobs, candidates, export.NewXLSX(), log),
		Candidates: service.NewCandidateService(candidates, jobs, nil, log),
		Reset:      service.NewResetService(sqldb.NewStore(db), nil, log),
	}

	reg := prometheus.NewRegistry()
	e, err := api.NewRouter(svc, api.Options{
		Readiness:  map[string]handler.Pinger{"sql": db},
		Registerer: reg,
		Gatherer:   reg,
	}, log)
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()
	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c
}

func TestRouter_EndToEndHiringFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	mgr := newClient(t, srv)
	if _, err := mgr.Register(ctx, "mgr1", "pw", domain.RoleManager); err != nil {
		t.Fatalf("register manager: %v", err)
	}
	if _, err := mgr.Login(ctx, "mgr1", "pw"); err != nil {
		t.Fatalf("login manager: %v", err)
	}

	job, err := mgr.CreateJob(ctx, client.NewJob{Title: "Engineer", Description: "...", Requirements: "..."})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if job.ID <= 0 || job.Title != "Engineer" || job.Description != "..." || job.Requirements != "..." {
		t.Fatalf("unexpected job: %+v", job)
	}

	rec := newClient(t, srv)
	if _, err := rec.Register(ctx, "rec1", "pw", domain.RoleRecruiter); err != nil {
		t.Fatalf("register recruiter: %v", err)
	}
	if _, err := rec.Login(ctx, "rec1", "pw"); err != nil {
		t.Fatalf("login recruiter: %v", err)
	}

	cand, err := rec.CreateCandidate(ctx, client.NewCandidate{
		JobID: job.ID, Name: "A", Email: "a@b.com", Phone: "1", ResumeURL: "https://example.com/a.pdf",
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if cand.Stage != domain.StageSubmitted {
		t.Fatalf("expected default stage Submitted, got %q", cand.Stage)
	}

	if _, err := rec.UpdateStage(ctx, cand.ID, domain.StageSelected); err != nil {
		t.Fatalf("update stage: %v", err)
	}

	list, err := mgr.Candidates(ctx, job.ID)
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(list) != 1 || list[0].Stage != domain.StageSelected || list[0].RecruiterUsername != "rec1" {
		t.Fatalf("unexpected candidates: %+v", list)
	}

	if err := mgr.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	jobs, err := mgr.Jobs(ctx)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs after reset, got %+v", jobs)
	}

	// the users are gone too, so the old sessions no longer authenticate
	if _, err := mgr.Me(ctx); !client.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 after reset, got %v", err)
	}
}

func TestRouter_DuplicateRegistration(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	if _, err := newClient(t, srv).Register(ctx, "alice", "pw", domain.RoleRecruiter); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := newClient(t, srv).Register(ctx, "alice", "other", domain.RoleManager)
	if !client.IsStatus(err, http.StatusBadRequest) || !strings.Contains(err.Error(), "Username already taken") {
		t.Fatalf("expected username taken, got %v", err)
	}

	// the first password still works, so no second record replaced it
	if _, err := newClient(t, srv).Login(ctx, "alice", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := newClient(t, srv).Login(ctx, "alice", "other"); !client.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 for second password, got %v", err)
	}
}

func TestRouter_RoleChecks(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	anon := newClient(t, srv)
	if _, err := anon.CreateJob(ctx, client.NewJob{Title: "t", Description: "d", Requirements: "r"}); !client.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 for anonymous job create, got %v", err)
	}

	mgr := newClient(t, srv)
	if _, err := mgr.Register(ctx, "boss", "pw", domain.RoleManager); err != nil {
		t.Fatalf("register: %v", err)
	}
	job, err := mgr.CreateJob(ctx, client.NewJob{Title: "t", Description: "d", Requirements: "r"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	rec := newClient(t, srv)
	if _, err := rec.Register(ctx, "rita", "pw", domain.RoleRecruiter); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := rec.CreateJob(ctx, client.NewJob{Title: "x", Description: "d", Requirements: "r"}); !client.IsStatus(err, http.StatusForbidden) {
		t.Fatalf("expected 403 for recruiter job create, got %v", err)
	}
	if err := rec.Reset(ctx); !client.IsStatus(err, http.StatusForbidden) {
		t.Fatalf("expected 403 for recruiter reset, got %v", err)
	}
	if _, err := mgr.CreateCandidate(ctx, client.NewCandidate{JobID: job.ID, Name: "n", Email: "n@x.io", Phone: "1", ResumeURL: "https://x.io/cv"}); !client.IsStatus(err, http.StatusForbidden) {
		t.Fatalf("expected 403 for manager candidate create, got %v", err)
	}

	jobs, err := anon.Jobs(ctx)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected forbidden calls to change nothing, got %+v", jobs)
	}
	if me, err := mgr.Me(ctx); err != nil || me.Username != "boss" {
		t.Fatalf("expected manager account to survive forbidden reset, got %+v, %v", me, err)
	}
	if me, err := rec.Me(ctx); err != nil || me.Username != "rita" {
		t.Fatalf("expected recruiter account to survive forbidden reset, got %+v, %v", me, err)
	}
}

func TestRouter_CandidateRules(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	mgr := newClient(t, srv)
	if _, err := mgr.Register(ctx, "boss", "pw", domain.RoleManager); err != nil {
		t.Fatalf("register: %v", err)
	}
	job, err := mgr.CreateJob(ctx, client.NewJob{Title: "t", Description: "d", Requirements: "r"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	rec := newClient(t, srv)
	if _, err := rec.Register(ctx, "rita", "pw", domain.RoleRecruiter); err != nil {
		t.Fatalf("register: %v", err)
	}

	in := client.NewCandidate{JobID: job.ID, Name: "Ada", Email: "ada@x.io", Phone: "1", ResumeURL: "https://x.io/cv"}
	cand, err := rec.CreateCandidate(ctx, in)
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if cand.Notes != nil {
		t.Fatalf("expected null notes, got %q", *cand.Notes)
	}

	in.Email = "ADA@X.IO"
	if _, err := rec.CreateCandidate(ctx, in); !client.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}

	in.Email = "élodie@x.io"
	if _, err := rec.CreateCandidate(ctx, in); err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	in.Email = "ÉLODIE@x.io"
	if _, err := rec.CreateCandidate(ctx, in); !client.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected conflict for non-ASCII case variant, got %v", err)
	}

	in.JobID = 999
	in.Email = "other@x.io"
	if _, err := rec.CreateCandidate(ctx, in); !client.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 for unknown job, got %v", err)
	}

	if _, err := rec.UpdateStage(ctx, cand.ID, "Hired"); !client.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected 400 for invalid stage, got %v", err)
	}
	if _, err := rec.UpdateStage(ctx, 999, domain.StageRejected); !client.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 for unknown candidate, got %v", err)
	}

	list, err := rec.Candidates(ctx, job.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Stage != domain.StageSubmitted {
		t.Fatalf("expected two candidates with the first untouched, got %+v", list)
	}
}

func TestRouter_BoardDragAndExport(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	mgr := newClient(t, srv)
	if _, err := mgr.Register(ctx, "boss", "pw", domain.RoleManager); err != nil {
		t.Fatalf("register: %v", err)
	}
	job, err := mgr.CreateJob(ctx, client.NewJob{Title: "t", Description: "d", Requirements: "r"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	rec := newClient(t, srv)
	if _, err := rec.Register(ctx, "rita", "pw", domain.RoleRecruiter); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, email := range []string{"a@x.io", "b@x.io"} {
		if _, err := rec.CreateCandidate(ctx, client.NewCandidate{JobID: job.ID, Name: email, Email: email, Phone: "1", ResumeURL: "https://x.io/cv"}); err != nil {
			t.Fatalf("create candidate: %v", err)
		}
	}

	b := board.New(mgr, job.ID)
	if err := b.Load(ctx); err != nil {
		t.Fatalf("load board: %v", err)
	}
	submitted, _ := b.Grouping().Column(domain.StageSubmitted)
	if len(submitted.Candidates) != 2 {
		t.Fatalf("expected two submitted candidates, got %+v", submitted)
	}

	moved := submitted.Candidates[1].ID
	if err := b.OnDragEnd(ctx, board.Drop{CandidateID: moved, Destination: domain.StageSecondRound}); err != nil {
		t.Fatalf("drag: %v", err)
	}
	second, _ := b.Grouping().Column(domain.StageSecondRound)
	if len(second.Candidates) != 1 || second.Candidates[0].ID != moved {
		t.Fatalf("expected moved candidate in Second Round, got %+v", second)
	}

	exp, err := mgr.ExportCandidates(ctx, job.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exp.Filename != fmt.Sprintf("candidates-%d.xlsx", job.ID) || len(exp.Data) == 0 {
		t.Fatalf("unexpected export %s (%d bytes)", exp.Filename, len(exp.Data))
	}
	if _, err := mgr.ExportCandidates(ctx, 999); !client.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 for unknown job export, got %v", err)
	}
}

func TestRouter_ProbesAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/health/ready"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}

	if _, err := http.Get(srv.URL + "/api/jobs"); err != nil {
		t.Fatalf("GET /api/jobs: %v", err)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "ats_requests_total") {
		t.Fatalf("expected http request metrics, got:\n%s", body)
	}
}
