package profile

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/repository/memory"
	"campus-jobs/internal/usecase/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobs struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakeBlobs) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key, f.contentType, f.body = key, contentType, body
	return "https://files.example/" + key, nil
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) InvalidateListing(context.Context) { c.n++ }

type fixture struct {
	svc      *Service
	blobs    *fakeBlobs
	listing  *countingInvalidator
	store    *memory.Store
	student  *authz.Claims
	employer *authz.Claims
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	suid, spid := uuid.New(), uuid.New()
	require.NoError(t, store.Users().CreateStudentProfile(ctx, user.StudentProfile{ID: spid, UserID: suid, FullName: "Ada"}))
	euid, epid := uuid.New(), uuid.New()
	require.NoError(t, store.Users().CreateEmployerProfile(ctx, user.EmployerProfile{ID: epid, UserID: euid, CompanyName: "TechCorp"}))

	blobs := &fakeBlobs{}
	inv := &countingInvalidator{}
	svc := NewService(store.Users(), blobs, inv, nil)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return fixture{
		svc:      svc,
		blobs:    blobs,
		listing:  inv,
		store:    store,
		student:  &authz.Claims{UserID: suid, Role: user.RoleStudent, ProfileID: spid},
		employer: &authz.Claims{UserID: euid, Role: user.RoleEmployer, ProfileID: epid},
	}
}

func ptr[T any](v T) *T { return &v }

func TestUpdateStudentProfile_Partial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.UpdateStudentProfile(ctx, f.student, StudentProfileInput{Major: ptr(" CS "), GraduationYear: ptr(2026)})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FullName)
	assert.Equal(t, "CS", *p.Major)
	assert.Equal(t, 2026, *p.GraduationYear)

	p, err = f.svc.UpdateStudentProfile(ctx, f.student, StudentProfileInput{GPA: ptr("3.9")})
	require.NoError(t, err)
	assert.Equal(t, "CS", *p.Major)
	assert.Equal(t, "3.9", *p.GPA)
}

func TestUpdateStudentProfile_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStudentProfile(ctx, f.student, StudentProfileInput{FullName: ptr("  ")})
	var de *errs.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "is required", de.Fields["fullName"])

	_, err = f.svc.UpdateStudentProfile(ctx, f.student, StudentProfileInput{GraduationYear: ptr(1800)})
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Fields, "graduationYear")
}

func TestProfiles_RoleGated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetStudentProfile(ctx, f.employer)
	assert.True(t, errs.Is(err, errs.TypeAuthorization))
	_, err = f.svc.GetEmployerProfile(ctx, f.student)
	assert.True(t, errs.Is(err, errs.TypeAuthorization))
	_, err = f.svc.GetEmployerProfile(ctx, nil)
	assert.True(t, errs.Is(err, errs.TypeAuthentication))
}

func TestGetStudentProfile_Missing(t *testing.T) {
	f := newFixture(t)
	stranger := &authz.Claims{UserID: uuid.New(), Role: user.RoleStudent, ProfileID: uuid.New()}

	_, err := f.svc.GetStudentProfile(context.Background(), stranger)
	assert.True(t, errs.Is(err, errs.TypeNotFound))
}

func TestUpdateEmployerProfile_InvalidatesListingOnBrandChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateEmployerProfile(ctx, f.employer, EmployerProfileInput{Industry: ptr("Tech")})
	require.NoError(t, err)
	assert.Equal(t, 0, f.listing.n)

	p, err := f.svc.UpdateEmployerProfile(ctx, f.employer, EmployerProfileInput{CompanyName: ptr("TechCorp Intl")})
	require.NoError(t, err)
	assert.Equal(t, "TechCorp Intl", p.CompanyName)
	assert.Equal(t, "Tech", *p.Industry)
	assert.Equal(t, 1, f.listing.n)

	_, err = f.svc.UpdateEmployerProfile(ctx, f.employer, EmployerProfileInput{Website: ptr("not a url")})
	assert.True(t, errs.Is(err, errs.TypeValidation))
}

func TestUploadResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	content := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 resume"))
	url, err := f.svc.UploadResume(ctx, f.student, ResumeUpload{FileName: "my cv (final).pdf", Content: content})
	require.NoError(t, err)

	wantKey := "resumes/" + f.student.UserID.String() + "/1700000000000_my_cv__final_.pdf"
	assert.Equal(t, wantKey, f.blobs.key)
	assert.Equal(t, "application/pdf", f.blobs.contentType)
	assert.Equal(t, "https://files.example/"+wantKey, url)

	p, err := f.svc.GetStudentProfile(ctx, f.student)
	require.NoError(t, err)
	require.NotNil(t, p.ResumeURL)
	assert.Equal(t, url, *p.ResumeURL)
}

func TestUploadResume_AcceptsDataURL(t *testing.T) {
	f := newFixture(t)
	content := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))

	_, err := f.svc.UploadResume(context.Background(), f.student, ResumeUpload{FileName: "cv.pdf", Content: content})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), f.blobs.body)
}

func TestUploadResume_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UploadResume(ctx, f.student, ResumeUpload{FileName: "cv.pdf", Content: "!!!"})
	assert.True(t, errs.Is(err, errs.TypeValidation))

	_, err = f.svc.UploadResume(ctx, f.student, ResumeUpload{Content: "aGk="})
	assert.True(t, errs.Is(err, errs.TypeValidation))

	big := base64.StdEncoding.EncodeToString(make([]byte, MaxResumeBytes+1))
	_, err = f.svc.UploadResume(ctx, f.student, ResumeUpload{FileName: "cv.pdf", Content: big})
	assert.True(t, errs.Is(err, errs.TypeValidation))

	_, err = f.svc.UploadResume(ctx, f.employer, ResumeUpload{FileName: "cv.pdf", Content: "aGk="})
	assert.True(t, errs.Is(err, errs.TypeAuthorization))
}

func TestUploadResume_StoreFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.blobs.err = errors.New("s3 down")

	_, err := f.svc.UploadResume(context.Background(), f.student, ResumeUpload{FileName: "cv.pdf", Content: "aGk="})
	assert.True(t, errs.Is(err, errs.TypeInternal))
}

func TestUploadResume_ProfileMissingStillReturnsURL(t *testing.T) {
	f := newFixture(t)
	stranger := &authz.Claims{UserID: uuid.New(), Role: user.RoleStudent, ProfileID: uuid.New()}

	url, err := f.svc.UploadResume(context.Background(), stranger, ResumeUpload{FileName: "cv.pdf", Content: "aGk="})
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "r_sum_.pdf", SafeFileName("résumé.pdf"))
	assert.Equal(t, "a-b_c.d", SafeFileName("a-b_c.d"))
}
