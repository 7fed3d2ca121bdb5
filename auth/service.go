package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/models"
)

// ErrInvalidCredentials is shared by unknown usernames and wrong passwords.
var ErrInvalidCredentials = oops.Code(CodeInvalidCredentials).Errorf("invalid username or password")

// AdminStore is the slice of the admin repository the service needs.
type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Identity is the authenticated admin attached to a request.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResult is returned to the client on a successful login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

// Service ties admin credentials to bearer tokens.
type Service struct {
	admins AdminStore
	hasher PasswordHasher
	tokens *TokenService
	logger zerolog.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewService(admins AdminStore, hasher PasswordHasher, tokens *TokenService, logger zerolog.Logger) *Service {
	return &Service{
		admins: admins,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Tokens exposes the token service, for callers that issue tokens directly.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// dummy returns a hash that no password matches, computed with the same
// hasher so a missing user costs as much as a wrong password.
func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("portfolio-login-timing-guard")
		if err != nil {
			s.logger.Warn().Err(err).Msg("could not compute dummy password hash")
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Login checks credentials and issues a token. Unknown usernames and wrong
// passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, oops.Code(CodeLoginFailed).
			With("operation", "find admin by username").
			Wrap(err)
	}

	if admin == nil {
		s.hasher.Verify(password, s.dummy())
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.Username, admin.Role)
	if err != nil {
		return nil, oops.Code(CodeLoginFailed).
			With("operation", "issue token").
			Wrap(err)
	}

	if err := s.admins.TouchLastLogin(ctx, admin.ID, s.now()); err != nil {
		s.logger.Warn().Err(err).Str("username", admin.Username).Msg("failed to record last login")
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    admin.Username,
		Role:        admin.Role,
	}, nil
}

// Authenticate resolves a bearer token to a stored admin. A rejected token
// or an unknown subject returns CodeUnauthenticated; a store failure
// returns CodeLookupFailed.
func (s *Service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, oops.Code(CodeUnauthenticated).
			With("reason", ErrorCode(err)).
			Errorf("token rejected: %v", err)
	}

	admin, err := s.admins.FindByUsername(ctx, claims.Subject)
	if errors.Is(err, database.ErrNotFound) {
		return nil, oops.Code(CodeUnauthenticated).
			With("reason", "unknown subject").
			Errorf("no admin named %q", claims.Subject)
	}
	if err != nil {
		return nil, oops.Code(CodeLookupFailed).
			With("operation", "find admin by username").
			Wrap(err)
	}

	return &Identity{Username: admin.Username, Role: admin.Role}, nil
}
