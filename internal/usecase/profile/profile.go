package profile

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/logger"
	"campus-jobs/internal/pkg/validate"
	"campus-jobs/internal/usecase/authz"

	"go.uber.org/zap"
)

const (
	MessageProfileNotFound = "Profile not found"

	MaxResumeBytes = 5 << 20
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// BlobStore persists uploaded files and returns the URL they are served from.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// ListingInvalidator is told when data shown in the public job listing
// changes.
type ListingInvalidator interface {
	InvalidateListing(ctx context.Context)
}

type StudentProfileInput struct {
	FullName       *string `json:"fullName" validate:"omitempty,min=1,max=255"`
	University     *string `json:"university" validate:"omitempty,max=255"`
	Major          *string `json:"major" validate:"omitempty,max=255"`
	GraduationYear *int    `json:"graduationYear" validate:"omitempty,min=1900,max=2100"`
	GPA            *string `json:"gpa" validate:"omitempty,max=10"`
	Bio            *string `json:"bio"`
	ResumeURL      *string `json:"resumeUrl" validate:"omitempty,max=500,url"`
}

type EmployerProfileInput struct {
	CompanyName *string `json:"companyName" validate:"omitempty,min=1,max=255"`
	Industry    *string `json:"industry" validate:"omitempty,max=255"`
	CompanySize *string `json:"companySize" validate:"omitempty,max=50"`
	Website     *string `json:"website" validate:"omitempty,max=500,url"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl" validate:"omitempty,max=500,url"`
}

type ResumeUpload struct {
	FileName string `json:"fileName" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
}

type Service struct {
	users   user.Repository
	blobs   BlobStore
	listing ListingInvalidator
	now     func() time.Time
	log     *zap.Logger
}

func NewService(users user.Repository, blobs BlobStore, listing ListingInvalidator, log *zap.Logger) *Service {
	return &Service{
		users:   users,
		blobs:   blobs,
		listing: listing,
		now:     time.Now,
		log:     logger.OrNop(log).Named("profile"),
	}
}

func (s *Service) GetStudentProfile(ctx context.Context, claims *authz.Claims) (user.StudentProfile, error) {
	if err := authz.Require(claims, user.RoleStudent); err != nil {
		return user.StudentProfile{}, err
	}
	p, err := s.users.GetStudentProfileByUserID(ctx, claims.UserID)
	if err != nil {
		return user.StudentProfile{}, notFoundOrInternal(err)
	}
	return p, nil
}

// UpdateStudentProfile applies a partial update; absent fields keep their
// stored value.
func (s *Service) UpdateStudentProfile(ctx context.Context, claims *authz.Claims, in StudentProfileInput) (user.StudentProfile, error) {
	if err := authz.Require(claims, user.RoleStudent); err != nil {
		return user.StudentProfile{}, err
	}

	in.FullName = trimPtr(in.FullName)
	in.ResumeURL = trimPtr(in.ResumeURL)
	if in.FullName != nil && *in.FullName == "" {
		return user.StudentProfile{}, errs.Validation(validate.MessageInvalidInput, map[string]string{"fullName": "is required"})
	}
	if err := validate.Struct(in); err != nil {
		return user.StudentProfile{}, err
	}

	p, err := s.users.UpdateStudentProfile(ctx, claims.UserID, user.StudentProfileUpdate{
		FullName:       in.FullName,
		University:     trimPtr(in.University),
		Major:          trimPtr(in.Major),
		GraduationYear: in.GraduationYear,
		GPA:            trimPtr(in.GPA),
		Bio:            in.Bio,
		ResumeURL:      in.ResumeURL,
	})
	if err != nil {
		return user.StudentProfile{}, notFoundOrInternal(err)
	}
	return p, nil
}

func (s *Service) GetEmployerProfile(ctx context.Context, claims *authz.Claims) (user.EmployerProfile, error) {
	if err := authz.Require(claims, user.RoleEmployer); err != nil {
		return user.EmployerProfile{}, err
	}
	p, err := s.users.GetEmployerProfileByUserID(ctx, claims.UserID)
	if err != nil {
		return user.EmployerProfile{}, notFoundOrInternal(err)
	}
	return p, nil
}

func (s *Service) UpdateEmployerProfile(ctx context.Context, claims *authz.Claims, in EmployerProfileInput) (user.EmployerProfile, error) {
	if err := authz.Require(claims, user.RoleEmployer); err != nil {
		return user.EmployerProfile{}, err
	}

	in.CompanyName = trimPtr(in.CompanyName)
	in.Website = trimPtr(in.Website)
	in.LogoURL = trimPtr(in.LogoURL)
	if in.CompanyName != nil && *in.CompanyName == "" {
		return user.EmployerProfile{}, errs.Validation(validate.MessageInvalidInput, map[string]string{"companyName": "is required"})
	}
	if err := validate.Struct(in); err != nil {
		return user.EmployerProfile{}, err
	}

	p, err := s.users.UpdateEmployerProfile(ctx, claims.UserID, user.EmployerProfileUpdate{
		CompanyName: in.CompanyName,
		Industry:    trimPtr(in.Industry),
		CompanySize: trimPtr(in.CompanySize),
		Website:     in.Website,
		Description: in.Description,
		LogoURL:     in.LogoURL,
	})
	if err != nil {
		return user.EmployerProfile{}, notFoundOrInternal(err)
	}

	// Company name and logo are part of every listing.
	if s.listing != nil && (in.CompanyName != nil || in.LogoURL != nil) {
		s.listing.InvalidateListing(ctx)
	}
	return p, nil
}

// UploadResume stores a base64 encoded file and points the student's profile
// at it. The URL is returned even when the profile update fails.
func (s *Service) UploadResume(ctx context.Context, claims *authz.Claims, in ResumeUpload) (string, error) {
	if err := authz.Require(claims, user.RoleStudent); err != nil {
		return "", err
	}

	in.FileName = strings.TrimSpace(in.FileName)
	if err := validate.Struct(in); err != nil {
		return "", err
	}

	body, err := decodeContent(in.Content)
	if err != nil {
		return "", errs.Validation(validate.MessageInvalidInput, map[string]string{"content": "must be base64 encoded"})
	}
	if len(body) == 0 {
		return "", errs.Validation(validate.MessageInvalidInput, map[string]string{"content": "is required"})
	}
	if len(body) > MaxResumeBytes {
		return "", errs.Validation(validate.MessageInvalidInput, map[string]string{"content": "must be at most 5 MiB"})
	}

	key := ResumeKey(claims.UserID.String(), in.FileName, s.now())
	url, err := s.blobs.Put(ctx, key, http.DetectContentType(body), body)
	if err != nil {
		return "", errs.Internal("upload resume", err)
	}

	if _, err := s.users.UpdateStudentProfile(ctx, claims.UserID, user.StudentProfileUpdate{ResumeURL: &url}); err != nil {
		s.log.Error("resume uploaded but profile not updated",
			zap.String("user_id", claims.UserID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
	}

	s.log.Info("resume uploaded", zap.String("user_id", claims.UserID.String()), zap.Int("bytes", len(body)))
	return url, nil
}

// ResumeKey builds resumes/<userID>/<unixMillis>_<safeName>.
func ResumeKey(userID, fileName string, at time.Time) string {
	return fmt.Sprintf("resumes/%s/%d_%s", userID, at.UnixMilli(), SafeFileName(fileName))
}

func SafeFileName(name string) string {
	safe := unsafeFileChars.ReplaceAllString(name, "_")
	if safe == "" {
		return "resume"
	}
	return safe
}

// decodeContent accepts plain base64 or a data: URL.
func decodeContent(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "data:") {
		if i := strings.Index(content, ","); i >= 0 {
			content = content[i+1:]
		}
	}
	return base64.StdEncoding.DecodeString(content)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, user.ErrProfileNotFound) {
		return errs.NotFound(MessageProfileNotFound, err)
	}
	return errs.Internal("profile", err)
}
