package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Identity is what a session token asserts about its holder.
type Identity struct {
	UserID    uuid.UUID
	Role      string
	ProfileID uuid.UUID
}

type Claims struct {
	Role      string    `json:"role"`
	ProfileID uuid.UUID `json:"profileId"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

func (c Claims) Identity() (Identity, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{UserID: id, Role: c.Role, ProfileID: c.ProfileID}, nil
}

type Service interface {
	GenerateAccessToken(id Identity) (string, error)
	GenerateRefreshToken(id Identity) (string, error)
	ValidateAccessToken(token string) (Claims, error)
	ValidateRefreshToken(token string) (Claims, error)
	AccessTTL() time.Duration
}

// HMACService signs HS256 tokens. Access and refresh tokens use separate
// secrets, so one can never be accepted as the other.
type HMACService struct {
	issuer string

	accessSecret  []byte
	refreshSecret []byte

	accessExpiresIn  time.Duration
	refreshExpiresIn time.Duration

	now func() time.Time
}

func NewHMACService(issuer, accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		issuer:           issuer,
		accessSecret:     []byte(accessSecret),
		refreshSecret:    []byte(refreshSecret),
		accessExpiresIn:  accessExpiresIn,
		refreshExpiresIn: refreshExpiresIn,
		now:              time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(id Identity) (string, error) {
	return s.generate(TokenTypeAccess, id)
}

func (s *HMACService) GenerateRefreshToken(id Identity) (string, error) {
	return s.generate(TokenTypeRefresh, id)
}

func (s *HMACService) ValidateAccessToken(token string) (Claims, error) {
	return s.validate(token, TokenTypeAccess)
}

func (s *HMACService) ValidateRefreshToken(token string) (Claims, error) {
	return s.validate(token, TokenTypeRefresh)
}

func (s *HMACService) AccessTTL() time.Duration {
	return s.accessExpiresIn
}

func (s *HMACService) generate(tokenType string, id Identity) (string, error) {
	secret, expIn, err := s.secretAndExpiry(tokenType)
	if err != nil {
		return "", err
	}
	if id.UserID == uuid.Nil {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		Role:      id.Role,
		ProfileID: id.ProfileID,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   id.UserID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(expIn)),
		},
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(secret)
}

func (s *HMACService) validate(token, tokenType string) (Claims, error) {
	secret, _, err := s.secretAndExpiry(tokenType)
	if err != nil {
		return Claims{}, err
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.TokenType != tokenType {
		return Claims{}, ErrTokenInvalid
	}
	if s.issuer != "" && c.Issuer != s.issuer {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}

func (s *HMACService) secretAndExpiry(tokenType string) ([]byte, time.Duration, error) {
	switch tokenType {
	case TokenTypeAccess:
		if len(s.accessSecret) == 0 || s.accessExpiresIn <= 0 {
			return nil, 0, ErrTokenInvalid
		}
		return s.accessSecret, s.accessExpiresIn, nil
	case TokenTypeRefresh:
		if len(s.refreshSecret) == 0 || s.refreshExpiresIn <= 0 {
			return nil, 0, ErrTokenInvalid
		}
		return s.refreshSecret, s.refreshExpiresIn, nil
	default:
		return nil, 0, ErrTokenInvalid
	}
}
