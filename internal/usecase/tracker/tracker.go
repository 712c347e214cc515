// Package tracker records which jobs a student applied to or saved.
package tracker

import (
	"context"
	"errors"
	"strings"

	"campus-jobs/internal/domain"
	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/job"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/logger"
	"campus-jobs/internal/pkg/validate"
	"campus-jobs/internal/usecase/authz"
	"campus-jobs/internal/usecase/catalog"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MessageAlreadyApplied = "Already applied to this job"
	MessageJobNotFound    = catalog.MessageJobNotFound

	maxCoverLetterLen = 10000
)

// OwnerCheck resolves a job the caller must own; catalog.Catalog implements
// it.
type OwnerCheck interface {
	OwnedJob(ctx context.Context, claims *authz.Claims, jobID uuid.UUID) (job.Job, error)
}

type Tracker struct {
	store  domain.Store
	owners OwnerCheck
	log    *zap.Logger
}

func NewTracker(store domain.Store, owners OwnerCheck, log *zap.Logger) *Tracker {
	return &Tracker{store: store, owners: owners, log: logger.OrNop(log).Named("tracker")}
}

// Apply records a submitted application. The existence check and insert share
// a transaction and the unique (job, student) index settles concurrent calls.
func (t *Tracker) Apply(ctx context.Context, claims *authz.Claims, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	if err := authz.Require(claims, user.RoleStudent); err != nil {
		return application.Application{}, err
	}

	coverLetter = strings.TrimSpace(coverLetter)
	if len(coverLetter) > maxCoverLetterLen {
		return application.Application{}, errs.Validation(validate.MessageInvalidInput, map[string]string{
			"coverLetter": "is too long",
		})
	}

	a := application.Application{
		ID:        uuid.New(),
		JobID:     jobID,
		StudentID: claims.ProfileID,
		Status:    application.StatusSubmitted,
	}
	if coverLetter != "" {
		a.CoverLetter = &coverLetter
	}

	err := t.store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		exists, err := repos.Applications().Exists(ctx, jobID, claims.ProfileID)
		if err != nil {
			return err
		}
		if exists {
			return application.ErrAlreadyApplied
		}
		if err := activeJob(ctx, repos, jobID); err != nil {
			return err
		}
		return repos.Applications().Create(ctx, a)
	})
	if err != nil {
		return application.Application{}, mapErr("apply", err)
	}

	t.log.Info("application submitted", zap.String("job_id", jobID.String()), zap.String("student_id", claims.ProfileID.String()))
	return a, nil
}

// ToggleSave flips the saved state of jobID for the caller and returns the new
// state.
func (t *Tracker) ToggleSave(ctx context.Context, claims *authz.Claims, jobID uuid.UUID) (bool, error) {
	if err := authz.Require(claims, user.RoleStudent); err != nil {
		return false, err
	}

	var saved bool
	err := t.store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		removed, err := repos.SavedJobs().Delete(ctx, jobID, claims.ProfileID)
		if err != nil {
			return err
		}
		if removed {
			saved = false
			return nil
		}

		if err := activeJob(ctx, repos, jobID); err != nil {
			return err
		}
		if err := repos.SavedJobs().Create(ctx, application.SavedJob{
			ID:        uuid.New(),
			JobID:     jobID,
			StudentID: claims.ProfileID,
		}); err != nil {
			return err
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, mapErr("toggle save", err)
	}
	return saved, nil
}

// ListApplications returns the student's own applications, optionally
// narrowed to one job.
func (t *Tracker) ListApplications(ctx context.Context, claims *authz.Claims, jobID *uuid.UUID) ([]application.Application, error) {
	if err := authz.Require(claims, user.RoleStudent); err != nil {
		return nil, err
	}

	var (
		out []application.Application
		err error
	)
	if jobID != nil {
		out, err = t.store.Applications().ListByStudentAndJob(ctx, claims.ProfileID, *jobID)
	} else {
		out, err = t.store.Applications().ListByStudent(ctx, claims.ProfileID)
	}
	if err != nil {
		return nil, errs.Internal("list applications", err)
	}
	return out, nil
}

// ListApplicants returns everyone who applied to a job the caller owns.
func (t *Tracker) ListApplicants(ctx context.Context, claims *authz.Claims, jobID uuid.UUID) ([]application.Applicant, error) {
	if err := authz.Require(claims, user.RoleEmployer); err != nil {
		return nil, err
	}
	if _, err := t.owners.OwnedJob(ctx, claims, jobID); err != nil {
		return nil, err
	}

	out, err := t.store.Applications().ListApplicants(ctx, jobID)
	if err != nil {
		return nil, errs.Internal("list applicants", err)
	}
	return out, nil
}

func (t *Tracker) ListSavedJobs(ctx context.Context, claims *authz.Claims) ([]application.SavedJob, error) {
	if err := authz.Require(claims, user.RoleStudent); err != nil {
		return nil, err
	}
	out, err := t.store.SavedJobs().ListByStudent(ctx, claims.ProfileID)
	if err != nil {
		return nil, errs.Internal("list saved jobs", err)
	}
	return out, nil
}

func activeJob(ctx context.Context, repos domain.Repositories, jobID uuid.UUID) error {
	j, err := repos.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !j.IsActive {
		return job.ErrNotFound
	}
	return nil
}

func mapErr(op string, err error) error {
	switch {
	case errors.Is(err, application.ErrAlreadyApplied):
		return errs.Conflict(MessageAlreadyApplied, err)
	case errors.Is(err, job.ErrNotFound), errors.Is(err, application.ErrJobMissing):
		return errs.NotFound(MessageJobNotFound, err)
	default:
		return errs.Internal(op, err)
	}
}
