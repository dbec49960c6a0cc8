package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Username] = stored
	return cloneUser(stored), nil
}

// stubHasher stores "hashed:<plaintext>".
type stubHasher struct{ err error }

func (h stubHasher) Hash(p string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + p, nil
}

func (stubHasher) Verify(p, stored string) bool { return stored == "hashed:"+p }

type stubJobRepo struct {
	jobs      map[int64]*domain.Job
	nextID    int64
	createErr error
}

func newStubJobRepo(jobs ...domain.Job) *stubJobRepo {
	r := &stubJobRepo{jobs: make(map[int64]*domain.Job)}
	for i := range jobs {
		j := jobs[i]
		r.jobs[j.ID] = &j
		if j.ID > r.nextID {
			r.nextID = j.ID
		}
	}
	return r
}

func (r *stubJobRepo) List(context.Context) ([]domain.Job, error) {
	out := make([]domain.Job, 0, len(r.jobs))
	for id := int64(1); id <= r.nextID; id++ {
		if j, ok := r.jobs[id]; ok {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id int64) (*domain.Job, error) {
	if j, ok := r.jobs[id]; ok {
		clone := *j
		return &clone, nil
	}
	return nil, domain.ErrJobNotFound
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	stored := *job
	stored.ID = r.nextID
	r.jobs[stored.ID] = &stored
	out := stored
	return &out, nil
}

type stubCandidateRepo struct {
	items     []*domain.Candidate
	createErr error
	updateErr error
	existsErr error
}

func (r *stubCandidateRepo) ListByJob(_ context.Context, jobID int64) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, 0)
	for _, c := range r.items {
		if c.JobID == jobID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCandidateRepo) FindByID(_ context.Context, id int64) (*domain.Candidate, error) {
	for _, c := range r.items {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCandidateNotFound
}

func (r *stubCandidateRepo) Create(_ context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *c
	stored.ID = int64(len(r.items) + 1)
	r.items = append(r.items, &stored)
	out := stored
	return &out, nil
}

func (r *stubCandidateRepo) UpdateStage(_ context.Context, id int64, stage domain.Stage) (*domain.Candidate, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for _, c := range r.items {
		if c.ID == id {
			c.Stage = stage
			out := *c
			out.RecruiterUsername = ""
			return &out, nil
		}
	}
	return nil, domain.ErrCandidateNotFound
}

func (r *stubCandidateRepo) ExistsByJobAndEmail(_ context.Context, jobID int64, email string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, c := range r.items {
		if c.JobID == jobID && strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type stubEventRepo struct {
	events    []domain.StageEvent
	recordErr error
	clearErr  error
	cleared   bool
}

func (r *stubEventRepo) Record(_ context.Context, e *domain.StageEvent) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.events = append(r.events, *e)
	return nil
}

func (r *stubEventRepo) ListByCandidate(_ context.Context, id int64) ([]domain.StageEvent, error) {
	out := make([]domain.StageEvent, 0)
	for _, e := range r.events {
		if e.CandidateID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEventRepo) Clear(context.Context) error {
	if r.clearErr != nil {
		return r.clearErr
	}
	r.cleared = true
	r.events = nil
	return nil
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	err      error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, sess *domain.Session) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type stubEncoder struct {
	last ports.Table
	err  error
}

func (e *stubEncoder) Encode(t ports.Table) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.last = t
	return []byte("xlsx-bytes"), nil
}

func (*stubEncoder) ContentType() string { return "application/test" }
func (*stubEncoder) Extension() string   { return "xlsx" }

type stubDataStore struct {
	calls int
	err   error
}

func (s *stubDataStore) Clear(context.Context) error {
	s.calls++
	return s.err
}

var errBoom = errors.New("boom")
