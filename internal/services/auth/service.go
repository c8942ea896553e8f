package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aweston/charkeep/internal/dependencies/clock"
	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Token type claim values
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the identity carried by a validated token
type Claims struct {
	UserID   model.UserID
	Username string
	Email    string
}

// TokenPair is the access/refresh pair issued on login
type TokenPair struct {
	Access  string
	Refresh string
}

// tokenClaims is the wire form used for JWT signing and parsing
type tokenClaims struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
}

// Config holds configuration for the auth service
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		Issuer:     "charkeep",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 168 * time.Hour,
	}
}

// Service handles credential verification and token issuance
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	config  Config
}

// New creates a new AuthService
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	defaults := DefaultConfig()
	if cfg.Issuer == "" {
		cfg.Issuer = defaults.Issuer
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = defaults.AccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = defaults.RefreshTTL
	}
	return &Service{
		storage: storage,
		clock:   clock,
		config:  cfg,
	}
}

// Login authenticates a user by username and password and issues tokens.
// An unknown username surfaces as user-not-found rather than
// invalid-credentials; a wrong password is invalid-credentials.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(user)
}

// Register creates a user account and issues tokens for it
func (s *Service) Register(ctx context.Context, username, email, password string) (*TokenPair, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issuePair(user)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	// Re-read the user so deleted accounts cannot renew
	user, err := s.storage.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return s.issuePair(user)
}

// Authorize validates an access token and returns its claims
func (s *Service) Authorize(_ context.Context, accessToken string) (*Claims, error) {
	return s.parse(accessToken, TokenTypeAccess)
}

// HashPassword hashes a plaintext password for storage
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// issuePair signs an access/refresh pair for a user
func (s *Service) issuePair(user *model.User) (*TokenPair, error) {
	access, err := s.sign(user, TokenTypeAccess, s.config.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, TokenTypeRefresh, s.config.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *Service) sign(user *model.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.clock.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   string(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username:  user.Username,
		Email:     user.Email,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *Service) parse(tokenString, wantType string) (*Claims, error) {
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		return []byte(s.config.Secret), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if parsed.TokenType != wantType || parsed.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:   model.UserID(parsed.Subject),
		Username: parsed.Username,
		Email:    parsed.Email,
	}, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Register(ctx context.Context, username, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Authorize(ctx context.Context, accessToken string) (*Claims, error)
	HashPassword(password string) (string, error)
}

var _ ServiceInterface = (*Service)(nil)
