package tracker

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/repository/memory"
	"campus-jobs/internal/usecase/authz"
	"campus-jobs/internal/usecase/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *memory.Store
	catalog  *catalog.Catalog
	tracker  *Tracker
	employer *authz.Claims
	rival    *authz.Claims
	student  *authz.Claims
	jobID    uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	mkEmployer := func(company string) *authz.Claims {
		uid, pid := uuid.New(), uuid.New()
		require.NoError(t, store.Users().Create(ctx, user.User{ID: uid, Email: company + "@corp.io", Role: user.RoleEmployer}))
		require.NoError(t, store.Users().CreateEmployerProfile(ctx, user.EmployerProfile{ID: pid, UserID: uid, CompanyName: company}))
		return &authz.Claims{UserID: uid, Role: user.RoleEmployer, ProfileID: pid}
	}

	suid, spid := uuid.New(), uuid.New()
	uni := "MIT"
	require.NoError(t, store.Users().Create(ctx, user.User{ID: suid, Email: "s1@uni.edu", Role: user.RoleStudent}))
	require.NoError(t, store.Users().CreateStudentProfile(ctx, user.StudentProfile{ID: spid, UserID: suid, FullName: "Student One", University: &uni}))

	cat := catalog.NewCatalog(store, nil, 0, nil)
	f := fixture{
		store:    store,
		catalog:  cat,
		tracker:  NewTracker(store, cat, nil),
		employer: mkEmployer("a"),
		rival:    mkEmployer("b"),
		student:  &authz.Claims{UserID: suid, Role: user.RoleStudent, ProfileID: spid},
	}

	l, err := cat.CreateJob(ctx, f.employer, catalog.CreateJobInput{
		Title: "Intern", Description: "d", Location: "Remote", Type: "internship", WorkMode: "remote",
	})
	require.NoError(t, err)
	f.jobID = l.ID
	return f
}

func TestApply_TwiceConflictsAndKeepsOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.tracker.Apply(ctx, f.student, f.jobID, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, application.StatusSubmitted, a.Status)
	require.NotNil(t, a.CoverLetter)
	assert.Equal(t, "hello", *a.CoverLetter)
	assert.Equal(t, 1, f.store.CountApplications(f.jobID, f.student.ProfileID))

	_, err = f.tracker.Apply(ctx, f.student, f.jobID, "")
	var de *errs.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errs.TypeConflict, de.Type)
	assert.Equal(t, "Already applied to this job", de.Message)
	assert.Equal(t, 1, f.store.CountApplications(f.jobID, f.student.ProfileID))
}

func TestApply_ConcurrentCallsCreateOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 16
	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.tracker.Apply(ctx, f.student, f.jobID, "")
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	succeeded := 0
	for err := range errCh {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errs.Is(err, errs.TypeConflict), err.Error())
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.CountApplications(f.jobID, f.student.ProfileID))
}

func TestToggleSave_ConcurrentCallsAlternate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 10
	var mu sync.Mutex
	saves := 0
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			saved, err := f.tracker.ToggleSave(ctx, f.student, f.jobID)
			assert.NoError(t, err)
			if saved {
				mu.Lock()
				saves++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, n/2, saves)
	assert.Equal(t, 0, f.store.CountSaved(f.jobID, f.student.ProfileID))
}

func TestApply_MissingOrInactiveJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tracker.Apply(ctx, f.student, uuid.New(), "")
	assert.True(t, errs.Is(err, errs.TypeNotFound))

	f.store.SetJobActive(f.jobID, false)
	_, err = f.tracker.Apply(ctx, f.student, f.jobID, "")
	assert.True(t, errs.Is(err, errs.TypeNotFound))
	assert.Equal(t, 0, f.store.CountApplications(f.jobID, f.student.ProfileID))
}

func TestApply_AfterDeleteIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.catalog.DeleteJob(ctx, f.employer, f.jobID))
	_, err := f.tracker.Apply(ctx, f.student, f.jobID, "")
	assert.True(t, errs.Is(err, errs.TypeNotFound))
}

func TestApply_RequiresStudent(t *testing.T) {
	f := newFixture(t)

	_, err := f.tracker.Apply(context.Background(), f.employer, f.jobID, "")
	assert.True(t, errs.Is(err, errs.TypeAuthorization))
	_, err = f.tracker.Apply(context.Background(), nil, f.jobID, "")
	assert.True(t, errs.Is(err, errs.TypeAuthentication))
}

func TestApply_CoverLetterTooLong(t *testing.T) {
	f := newFixture(t)
	_, err := f.tracker.Apply(context.Background(), f.student, f.jobID, strings.Repeat("x", maxCoverLetterLen+1))
	assert.True(t, errs.Is(err, errs.TypeValidation))
}

func TestToggleSave_TwiceReturnsToUnsaved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	saved, err := f.tracker.ToggleSave(ctx, f.student, f.jobID)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, 1, f.store.CountSaved(f.jobID, f.student.ProfileID))

	saved, err = f.tracker.ToggleSave(ctx, f.student, f.jobID)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, 0, f.store.CountSaved(f.jobID, f.student.ProfileID))
}

func TestToggleSave_UnsaveWorksForInactiveJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tracker.ToggleSave(ctx, f.student, f.jobID)
	require.NoError(t, err)
	f.store.SetJobActive(f.jobID, false)

	saved, err := f.tracker.ToggleSave(ctx, f.student, f.jobID)
	require.NoError(t, err)
	assert.False(t, saved)

	_, err = f.tracker.ToggleSave(ctx, f.student, f.jobID)
	assert.True(t, errs.Is(err, errs.TypeNotFound))
}

func TestListApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.catalog.CreateJob(ctx, f.rival, catalog.CreateJobInput{
		Title: "Other", Description: "d", Location: "Paris", Type: "entry-level", WorkMode: "onsite",
	})
	require.NoError(t, err)

	_, err = f.tracker.Apply(ctx, f.student, f.jobID, "")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = f.tracker.Apply(ctx, f.student, other.ID, "")
	require.NoError(t, err)

	all, err := f.tracker.ListApplications(ctx, f.student, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, other.ID, all[0].JobID)

	one, err := f.tracker.ListApplications(ctx, f.student, &f.jobID)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, f.jobID, one[0].JobID)
}

func TestListApplicants_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tracker.Apply(ctx, f.student, f.jobID, "")
	require.NoError(t, err)

	got, err := f.tracker.ListApplicants(ctx, f.employer, f.jobID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Student One", got[0].FullName)
	assert.Equal(t, "s1@uni.edu", got[0].Email)
	require.NotNil(t, got[0].University)
	assert.Equal(t, "MIT", *got[0].University)

	_, err = f.tracker.ListApplicants(ctx, f.rival, f.jobID)
	assert.True(t, errs.Is(err, errs.TypeNotFound))

	_, err = f.tracker.ListApplicants(ctx, f.student, f.jobID)
	assert.True(t, errs.Is(err, errs.TypeAuthorization))
}

func TestListSavedJobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tracker.ToggleSave(ctx, f.student, f.jobID)
	require.NoError(t, err)

	got, err := f.tracker.ListSavedJobs(ctx, f.student)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f.jobID, got[0].JobID)
}
