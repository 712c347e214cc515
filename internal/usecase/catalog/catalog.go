// Package catalog owns job postings: employers create and delete them, anyone
// can list the active ones.
package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"campus-jobs/internal/domain"
	"campus-jobs/internal/domain/job"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/logger"
	"campus-jobs/internal/pkg/validate"
	"campus-jobs/internal/usecase/authz"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MessageJobNotFound = "Job not found"

	// ListingGenerationKey counts listing invalidations. The public listing
	// is cached under a key carrying the current generation.
	ListingGenerationKey = "jobs:list:gen"

	activeListingPrefix = "jobs:list:active:"
)

// ListingCache stores the public listing between writes.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	GetInt(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// ActiveListingKey is the cache key of the listing for generation gen.
func ActiveListingKey(gen int64) string {
	return activeListingPrefix + strconv.FormatInt(gen, 10)
}

type CreateJobInput struct {
	Title        string `json:"title" form:"title" validate:"required,max=255"`
	Description  string `json:"description" form:"description" validate:"required"`
	Requirements string `json:"requirements" form:"requirements"`
	Location     string `json:"location" form:"location" validate:"required,max=255"`
	Type         string `json:"type" form:"type" validate:"required,oneof=internship entry-level"`
	WorkMode     string `json:"workMode" form:"workMode" validate:"required,oneof=remote onsite hybrid"`
	Salary       string `json:"salary" form:"salary" validate:"max=100"`
}

type Catalog struct {
	store domain.Store
	cache ListingCache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCatalog(store domain.Store, cache ListingCache, ttl time.Duration, log *zap.Logger) *Catalog {
	return &Catalog{store: store, cache: cache, ttl: ttl, log: logger.OrNop(log).Named("catalog")}
}

func (c *Catalog) CreateJob(ctx context.Context, claims *authz.Claims, in CreateJobInput) (job.Listing, error) {
	if err := authz.Require(claims, user.RoleEmployer); err != nil {
		return job.Listing{}, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Type = strings.TrimSpace(in.Type)
	in.WorkMode = strings.TrimSpace(in.WorkMode)
	in.Salary = strings.TrimSpace(in.Salary)
	if err := validate.Struct(in); err != nil {
		return job.Listing{}, err
	}

	j := job.Job{
		ID:           uuid.New(),
		EmployerID:   claims.ProfileID,
		Title:        in.Title,
		Description:  in.Description,
		Requirements: SplitRequirements(in.Requirements),
		Location:     in.Location,
		Type:         job.Type(in.Type),
		WorkMode:     job.WorkMode(in.WorkMode),
		IsActive:     true,
	}
	if in.Salary != "" {
		j.Salary = &in.Salary
	}

	if err := c.store.Jobs().Create(ctx, j); err != nil {
		return job.Listing{}, errs.Internal("create job", err)
	}
	c.invalidate(ctx)

	l, err := c.store.Jobs().GetListing(ctx, j.ID)
	if err != nil {
		return job.Listing{}, errs.Internal("load created job", err)
	}
	c.log.Info("job created", zap.String("job_id", j.ID.String()), zap.String("employer_id", j.EmployerID.String()))
	return l, nil
}

// ListActiveJobs is public. Results are cached until the next create or
// delete. The generation is read before the store so a listing computed
// before an invalidation lands under a key no reader asks for again.
func (c *Catalog) ListActiveJobs(ctx context.Context) ([]job.Listing, error) {
	key := ""
	if c.cache != nil {
		gen, err := c.cache.GetInt(ctx, ListingGenerationKey)
		if err != nil {
			c.log.Debug("listing generation read failed", zap.Error(err))
		} else {
			key = ActiveListingKey(gen)
			var cached []job.Listing
			hit, err := c.cache.GetJSON(ctx, key, &cached)
			if err != nil {
				c.log.Debug("listing cache read failed", zap.Error(err))
			}
			if hit {
				return cached, nil
			}
		}
	}

	out, err := c.store.Jobs().ListActive(ctx)
	if err != nil {
		return nil, errs.Internal("list jobs", err)
	}

	if key != "" {
		if err := c.cache.SetJSON(ctx, key, out, c.ttl); err != nil {
			c.log.Debug("listing cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

// ListOwnJobs returns the caller's postings, inactive ones included.
func (c *Catalog) ListOwnJobs(ctx context.Context, claims *authz.Claims) ([]job.Listing, error) {
	if err := authz.Require(claims, user.RoleEmployer); err != nil {
		return nil, err
	}
	out, err := c.store.Jobs().ListByEmployer(ctx, claims.ProfileID)
	if err != nil {
		return nil, errs.Internal("list own jobs", err)
	}
	return out, nil
}

// DeleteJob removes a posting owned by the caller. A job owned by someone
// else is reported exactly like a missing one.
func (c *Catalog) DeleteJob(ctx context.Context, claims *authz.Claims, jobID uuid.UUID) error {
	if err := authz.Require(claims, user.RoleEmployer); err != nil {
		return err
	}

	j, err := c.OwnedJob(ctx, claims, jobID)
	if err != nil {
		return err
	}

	deleted, err := c.store.Jobs().Delete(ctx, j.ID, claims.ProfileID)
	if err != nil {
		return errs.Internal("delete job", err)
	}
	if !deleted {
		return errs.NotFound(MessageJobNotFound, nil)
	}
	c.invalidate(ctx)

	c.log.Info("job deleted", zap.String("job_id", jobID.String()), zap.String("employer_id", claims.ProfileID.String()))
	return nil
}

// OwnedJob loads jobID and checks the caller owns it. Both a missing job and
// a foreign one yield NOT_FOUND.
func (c *Catalog) OwnedJob(ctx context.Context, claims *authz.Claims, jobID uuid.UUID) (job.Job, error) {
	j, err := c.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, errs.NotFound(MessageJobNotFound, err)
		}
		return job.Job{}, errs.Internal("get job", err)
	}

	d := authz.Authorize(claims, user.RoleEmployer, &j.EmployerID)
	if d.Reason == authz.ReasonNotOwner {
		return job.Job{}, errs.NotFound(MessageJobNotFound, d.Err())
	}
	if err := d.Err(); err != nil {
		return job.Job{}, err
	}
	return j, nil
}

// InvalidateListing drops the cached public listing.
func (c *Catalog) InvalidateListing(ctx context.Context) {
	c.invalidate(ctx)
}

func (c *Catalog) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if _, err := c.cache.Incr(ctx, ListingGenerationKey); err != nil {
		c.log.Warn("listing cache invalidation failed", zap.Error(err))
	}
}

// SplitRequirements turns free text into one requirement per non-empty line.
func SplitRequirements(text string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
