package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"campus-jobs/internal/domain"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/jwt"
	"campus-jobs/internal/pkg/logger"
	"campus-jobs/internal/pkg/validate"
	"campus-jobs/internal/usecase/authz"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	MessageEmailTaken         = "Email already registered"
	MessageInvalidCredentials = "Invalid credentials"
	MessageInvalidToken       = "Invalid or expired token"

	passwordCost = bcrypt.DefaultCost
	// maxPasswordBytes is bcrypt's input limit, counted in bytes not runes.
	maxPasswordBytes = 72
)

// dummyHash is compared against when the email is unknown so that a miss
// costs about as much as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("campus-jobs-dummy-password"), passwordCost)

type SignUpInput struct {
	Email       string `json:"email" form:"email" validate:"required,email,max=255"`
	Password    string `json:"password" form:"password" validate:"required,min=6,max=72"`
	Role        string `json:"role" form:"role" validate:"required,oneof=student employer"`
	FullName    string `json:"fullName" form:"fullName" validate:"required_if=Role student,max=255"`
	CompanyName string `json:"companyName" form:"companyName" validate:"required_if=Role employer,max=255"`
	University  string `json:"university" form:"university" validate:"max=255"`
	Industry    string `json:"industry" form:"industry" validate:"max=255"`
}

type SignInInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role" form:"role" validate:"required,oneof=student employer"`
}

// Session is the result of a successful sign-in or refresh.
type Session struct {
	User         user.User
	ProfileID    uuid.UUID
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

type Service struct {
	store  domain.Store
	tokens jwt.Service
	log    *zap.Logger
}

func NewService(store domain.Store, tokens jwt.Service, log *zap.Logger) *Service {
	return &Service{store: store, tokens: tokens, log: logger.OrNop(log).Named("auth")}
}

// SignUp creates the user and its role profile in one transaction.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (user.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.University = strings.TrimSpace(in.University)
	in.Industry = strings.TrimSpace(in.Industry)
	if err := validate.Struct(in); err != nil {
		return user.User{}, err
	}
	if len(in.Password) > maxPasswordBytes {
		return user.User{}, passwordTooLong()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return user.User{}, passwordTooLong()
		}
		return user.User{}, errs.Internal("hash password", err)
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         user.Role(in.Role),
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		exists, err := repos.Users().ExistsByEmail(ctx, u.Email)
		if err != nil {
			return err
		}
		if exists {
			return user.ErrEmailTaken
		}
		if err := repos.Users().Create(ctx, u); err != nil {
			return err
		}

		switch u.Role {
		case user.RoleStudent:
			return repos.Users().CreateStudentProfile(ctx, user.StudentProfile{
				ID:         uuid.New(),
				UserID:     u.ID,
				FullName:   in.FullName,
				University: optional(in.University),
			})
		default:
			return repos.Users().CreateEmployerProfile(ctx, user.EmployerProfile{
				ID:          uuid.New(),
				UserID:      u.ID,
				CompanyName: in.CompanyName,
				Industry:    optional(in.Industry),
			})
		}
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, errs.Conflict(MessageEmailTaken, err)
		}
		return user.User{}, errs.Internal("create user", err)
	}

	s.log.Info("user signed up", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	return sanitizeUser(u), nil
}

func passwordTooLong() error {
	return errs.Validation(validate.MessageInvalidInput, map[string]string{"password": "must be at most 72 bytes"})
}

// SignIn resolves email and role jointly to one account. Every failure looks
// the same to the caller.
func (s *Service) SignIn(ctx context.Context, in SignInInput) (Session, error) {
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if err := validate.Struct(in); err != nil {
		return Session{}, errs.Authentication(MessageInvalidCredentials, err)
	}

	u, err := s.store.Users().GetByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return Session{}, errs.Internal("get user", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return Session{}, errs.Authentication(MessageInvalidCredentials, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return Session{}, errs.Authentication(MessageInvalidCredentials, nil)
	}
	if u.Role != user.Role(in.Role) {
		return Session{}, errs.Authentication(MessageInvalidCredentials, nil)
	}

	return s.issue(ctx, u)
}

// Refresh exchanges a refresh token for a new pair. Role and profile are read
// again from storage.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	c, err := s.tokens.ValidateRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return Session{}, errs.Authentication(MessageInvalidToken, err)
	}
	id, err := c.Identity()
	if err != nil {
		return Session{}, errs.Authentication(MessageInvalidToken, err)
	}

	u, err := s.store.Users().GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, errs.Authentication(MessageInvalidToken, err)
		}
		return Session{}, errs.Internal("get user", err)
	}
	return s.issue(ctx, u)
}

// SignOut has nothing to revoke: tokens are stateless and the transport drops
// its cookie.
func (s *Service) SignOut(_ context.Context, claims *authz.Claims) {
	if claims == nil {
		return
	}
	s.log.Info("user signed out", zap.String("user_id", claims.UserID.String()))
}

// Verify validates an access token and returns the claims it carries.
func (s *Service) Verify(token string) (authz.Claims, error) {
	c, err := s.tokens.ValidateAccessToken(strings.TrimSpace(token))
	if err != nil {
		return authz.Claims{}, errs.Authentication(MessageInvalidToken, err)
	}
	id, err := c.Identity()
	if err != nil {
		return authz.Claims{}, errs.Authentication(MessageInvalidToken, err)
	}
	role := user.Role(id.Role)
	if !role.Valid() || id.ProfileID == uuid.Nil {
		return authz.Claims{}, errs.Authentication(MessageInvalidToken, nil)
	}
	return authz.Claims{UserID: id.UserID, Role: role, ProfileID: id.ProfileID}, nil
}

func (s *Service) issue(ctx context.Context, u user.User) (Session, error) {
	profileID, err := s.profileID(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			s.log.Warn("user has no profile", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
			return Session{}, errs.Authentication(MessageInvalidCredentials, err)
		}
		return Session{}, errs.Internal("get profile", err)
	}

	id := jwt.Identity{UserID: u.ID, Role: string(u.Role), ProfileID: profileID}
	access, err := s.tokens.GenerateAccessToken(id)
	if err != nil {
		return Session{}, errs.Internal("sign access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(id)
	if err != nil {
		return Session{}, errs.Internal("sign refresh token", err)
	}

	return Session{
		User:         sanitizeUser(u),
		ProfileID:    profileID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.tokens.AccessTTL(),
	}, nil
}

func (s *Service) profileID(ctx context.Context, u user.User) (uuid.UUID, error) {
	switch u.Role {
	case user.RoleStudent:
		p, err := s.store.Users().GetStudentProfileByUserID(ctx, u.ID)
		return p.ID, err
	case user.RoleEmployer:
		p, err := s.store.Users().GetEmployerProfileByUserID(ctx, u.ID)
		return p.ID, err
	default:
		return uuid.Nil, user.ErrProfileNotFound
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
