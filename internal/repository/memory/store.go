// Package memory is an in-process domain.Store. Transactions are serialized
// and rolled back by restoring a snapshot of the state. Writes made outside a
// transaction wait for the running one, so a rollback never erases them.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campus-jobs/internal/domain"
	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/job"
	"campus-jobs/internal/domain/user"

	"github.com/google/uuid"
)

type pair struct {
	jobID     uuid.UUID
	studentID uuid.UUID
}

type state struct {
	users        map[uuid.UUID]user.User
	students     map[uuid.UUID]user.StudentProfile
	employers    map[uuid.UUID]user.EmployerProfile
	jobs         map[uuid.UUID]job.Job
	applications map[pair]application.Application
	saved        map[pair]application.SavedJob
}

func newState() state {
	return state{
		users:        map[uuid.UUID]user.User{},
		students:     map[uuid.UUID]user.StudentProfile{},
		employers:    map[uuid.UUID]user.EmployerProfile{},
		jobs:         map[uuid.UUID]job.Job{},
		applications: map[pair]application.Application{},
		saved:        map[pair]application.SavedJob{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.students {
		c.students[k] = v
	}
	for k, v := range s.employers {
		c.employers[k] = v
	}
	for k, v := range s.jobs {
		v.Requirements = append([]string(nil), v.Requirements...)
		c.jobs[k] = v
	}
	for k, v := range s.applications {
		c.applications[k] = v
	}
	for k, v := range s.saved {
		c.saved[k] = v
	}
	return c
}

type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   state
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	committed := false
	defer func() {
		if !committed {
			s.mu.Lock()
			s.st = snapshot
			s.mu.Unlock()
		}
	}()

	if err := fn(ctx, txRepos{s}); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Store) Users() user.Repository                    { return users{s: s} }
func (s *Store) Jobs() job.Repository                      { return jobs{s: s} }
func (s *Store) Applications() application.Repository      { return applications{s: s} }
func (s *Store) SavedJobs() application.SavedJobRepository { return savedJobs{s: s} }

// txRepos are the repositories handed to a WithinTx callback; the caller
// already holds txMu.
type txRepos struct{ s *Store }

func (t txRepos) Users() user.Repository                    { return users{s: t.s, tx: true} }
func (t txRepos) Jobs() job.Repository                      { return jobs{s: t.s, tx: true} }
func (t txRepos) Applications() application.Repository      { return applications{s: t.s, tx: true} }
func (t txRepos) SavedJobs() application.SavedJobRepository { return savedJobs{s: t.s, tx: true} }

// lockWrite takes the state lock for a write and returns its release.
// Outside a transaction it first waits for txMu.
func (s *Store) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// CountApplications and CountSaved expose row counts for assertions.
func (s *Store) CountApplications(jobID, studentID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.st.applications[pair{jobID, studentID}]
	if ok {
		return 1
	}
	return 0
}

func (s *Store) CountSaved(jobID, studentID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.st.saved[pair{jobID, studentID}]
	if ok {
		return 1
	}
	return 0
}

// SetJobActive flips visibility directly; there is no use case for it.
func (s *Store) SetJobActive(id uuid.UUID, active bool) {
	defer s.lockWrite(false)()
	if j, ok := s.st.jobs[id]; ok {
		j.IsActive = active
		s.st.jobs[id] = j
	}
}

type users struct {
	s  *Store
	tx bool
}

func (r users) Create(_ context.Context, u user.User) error {
	defer r.s.lockWrite(r.tx)()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range r.s.st.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.st.users[u.ID] = u
	return nil
}

func (r users) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r users) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == user.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r users) CreateStudentProfile(_ context.Context, p user.StudentProfile) error {
	defer r.s.lockWrite(r.tx)()
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.st.students[p.ID] = p
	return nil
}

func (r users) CreateEmployerProfile(_ context.Context, p user.EmployerProfile) error {
	defer r.s.lockWrite(r.tx)()
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.st.employers[p.ID] = p
	return nil
}

func (r users) GetStudentProfileByUserID(_ context.Context, userID uuid.UUID) (user.StudentProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.st.students {
		if p.UserID == userID {
			return p, nil
		}
	}
	return user.StudentProfile{}, user.ErrProfileNotFound
}

func (r users) GetEmployerProfileByUserID(_ context.Context, userID uuid.UUID) (user.EmployerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.st.employers {
		if p.UserID == userID {
			return p, nil
		}
	}
	return user.EmployerProfile{}, user.ErrProfileNotFound
}

func (r users) UpdateStudentProfile(ctx context.Context, userID uuid.UUID, upd user.StudentProfileUpdate) (user.StudentProfile, error) {
	p, err := r.GetStudentProfileByUserID(ctx, userID)
	if err != nil {
		return user.StudentProfile{}, err
	}
	defer r.s.lockWrite(r.tx)()
	upd.Apply(&p)
	p.UpdatedAt = r.s.now()
	r.s.st.students[p.ID] = p
	return p, nil
}

func (r users) UpdateEmployerProfile(ctx context.Context, userID uuid.UUID, upd user.EmployerProfileUpdate) (user.EmployerProfile, error) {
	p, err := r.GetEmployerProfileByUserID(ctx, userID)
	if err != nil {
		return user.EmployerProfile{}, err
	}
	defer r.s.lockWrite(r.tx)()
	upd.Apply(&p)
	p.UpdatedAt = r.s.now()
	r.s.st.employers[p.ID] = p
	return p, nil
}

type jobs struct {
	s  *Store
	tx bool
}

func (r jobs) Create(_ context.Context, j job.Job) error {
	defer r.s.lockWrite(r.tx)()
	now := r.s.now()
	j.CreatedAt, j.UpdatedAt = now, now
	j.Requirements = append([]string{}, j.Requirements...)
	r.s.st.jobs[j.ID] = j
	return nil
}

func (r jobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.st.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (r jobs) GetListing(_ context.Context, id uuid.UUID) (job.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.st.jobs[id]
	if !ok {
		return job.Listing{}, job.ErrNotFound
	}
	return r.listing(j), nil
}

func (r jobs) ListActive(context.Context) ([]job.Listing, error) {
	return r.filter(func(j job.Job) bool { return j.IsActive }), nil
}

func (r jobs) ListByEmployer(_ context.Context, employerID uuid.UUID) ([]job.Listing, error) {
	return r.filter(func(j job.Job) bool { return j.EmployerID == employerID }), nil
}

func (r jobs) Delete(_ context.Context, id, employerID uuid.UUID) (bool, error) {
	defer r.s.lockWrite(r.tx)()
	j, ok := r.s.st.jobs[id]
	if !ok || j.EmployerID != employerID {
		return false, nil
	}
	delete(r.s.st.jobs, id)
	for k := range r.s.st.applications {
		if k.jobID == id {
			delete(r.s.st.applications, k)
		}
	}
	for k := range r.s.st.saved {
		if k.jobID == id {
			delete(r.s.st.saved, k)
		}
	}
	return true, nil
}

func (r jobs) filter(keep func(job.Job) bool) []job.Listing {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]job.Listing, 0)
	for _, j := range r.s.st.jobs {
		if keep(j) {
			out = append(out, r.listing(j))
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].ID.String() < out[b].ID.String()
		}
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out
}

func (r jobs) listing(j job.Job) job.Listing {
	l := job.Listing{Job: j}
	if e, ok := r.s.st.employers[j.EmployerID]; ok {
		l.Employer = &job.EmployerSummary{ID: e.ID, CompanyName: e.CompanyName, LogoURL: e.LogoURL}
	}
	return l
}

type applications struct {
	s  *Store
	tx bool
}

func (r applications) Exists(_ context.Context, jobID, studentID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.st.applications[pair{jobID, studentID}]
	return ok, nil
}

func (r applications) Create(_ context.Context, a application.Application) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.jobs[a.JobID]; !ok {
		return application.ErrJobMissing
	}
	k := pair{a.JobID, a.StudentID}
	if _, ok := r.s.st.applications[k]; ok {
		return application.ErrAlreadyApplied
	}
	now := r.s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.st.applications[k] = a
	return nil
}

func (r applications) ListByStudent(_ context.Context, studentID uuid.UUID) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return a.StudentID == studentID }), nil
}

func (r applications) ListByStudentAndJob(_ context.Context, studentID, jobID uuid.UUID) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool {
		return a.StudentID == studentID && a.JobID == jobID
	}), nil
}

func (r applications) ListApplicants(_ context.Context, jobID uuid.UUID) ([]application.Applicant, error) {
	apps := r.filter(func(a application.Application) bool { return a.JobID == jobID })

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]application.Applicant, 0, len(apps))
	for _, a := range apps {
		ap := application.Applicant{
			ApplicationID: a.ID,
			StudentID:     a.StudentID,
			Status:        a.Status,
			CoverLetter:   a.CoverLetter,
			AppliedAt:     a.CreatedAt,
		}
		if p, ok := r.s.st.students[a.StudentID]; ok {
			ap.FullName = p.FullName
			ap.University, ap.Major, ap.GPA = p.University, p.Major, p.GPA
			if u, ok := r.s.st.users[p.UserID]; ok {
				ap.Email = u.Email
			}
		}
		out = append(out, ap)
	}
	return out, nil
}

func (r applications) filter(keep func(application.Application) bool) []application.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]application.Application, 0)
	for _, a := range r.s.st.applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type savedJobs struct {
	s  *Store
	tx bool
}

func (r savedJobs) Delete(_ context.Context, jobID, studentID uuid.UUID) (bool, error) {
	defer r.s.lockWrite(r.tx)()
	k := pair{jobID, studentID}
	if _, ok := r.s.st.saved[k]; !ok {
		return false, nil
	}
	delete(r.s.st.saved, k)
	return true, nil
}

func (r savedJobs) Create(_ context.Context, sj application.SavedJob) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.jobs[sj.JobID]; !ok {
		return application.ErrJobMissing
	}
	k := pair{sj.JobID, sj.StudentID}
	if _, ok := r.s.st.saved[k]; ok {
		return nil
	}
	sj.CreatedAt = r.s.now()
	r.s.st.saved[k] = sj
	return nil
}

func (r savedJobs) ListByStudent(_ context.Context, studentID uuid.UUID) ([]application.SavedJob, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]application.SavedJob, 0)
	for _, sj := range r.s.st.saved {
		if sj.StudentID == studentID {
			out = append(out, sj)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var _ domain.Store = (*Store)(nil)
