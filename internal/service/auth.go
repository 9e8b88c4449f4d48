package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"backend/internal/config"
	"backend/internal/models"
	"backend/internal/repository"
	"backend/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRefreshInvalid     = errors.New("refresh token invalid")
	ErrRefreshExpired     = errors.New("refresh token expired")
	ErrSessionExpired     = errors.New("session expired")
)

// LoginResult carries everything a successful login or refresh produces.
// The refresh token is the only place the raw secret ever appears.
type LoginResult struct {
	User         models.SafeUser
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type AuthService interface {
	Login(ctx context.Context, username, password, userAgent, ip string) (*LoginResult, error)
	// Refresh rotates the presented refresh token. The old token is dead
	// afterwards: the stored hash is overwritten in a single conditional
	// update, so a concurrent refresh race has exactly one winner.
	Refresh(ctx context.Context, rawRefreshToken string) (*LoginResult, error)
	// Logout revokes the session owning the presented refresh token.
	// Idempotent: a missing or malformed token is not an error.
	Logout(ctx context.Context, rawRefreshToken string) error
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	signer   *token.Signer
	cfg      *config.Config
	logger   *zap.Logger
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, signer *token.Signer, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		signer:   signer,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, username, password, userAgent, ip string) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	secret, err := token.NewRefreshSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh secret: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		RefreshTokenHash: s.signer.HashRefreshSecret(secret),
		SessionExpiresAt: now.Add(s.cfg.SessionTTL()),
		RefreshExpiresAt: now.Add(s.cfg.RefreshTTL()),
		UserAgent:        userAgent,
		IPAddress:        ip,
		LastActivityAt:   now,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		s.logger.Error("Failed to create session", zap.Error(err))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	access, err := s.signer.SignAccessToken(user, session.ID)
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("session_id", session.ID))

	return &LoginResult{
		User:         user.Safe(),
		AccessToken:  access,
		RefreshToken: token.ComposeRefreshToken(session.ID, secret),
		ExpiresIn:    int64(s.cfg.AccessTTL().Seconds()),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, rawRefreshToken string) (*LoginResult, error) {
	sessionID, secret, ok := token.SplitRefreshToken(rawRefreshToken)
	if !ok {
		return nil, ErrRefreshInvalid
	}

	session, err := s.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRefreshInvalid
		}
		s.logger.Error("Failed to look up session", zap.Error(err))
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	if session.Revoked {
		return nil, ErrRefreshInvalid
	}

	now := time.Now()
	if !now.Before(session.RefreshExpiresAt) {
		s.revoke(ctx, session.ID)
		return nil, ErrRefreshExpired
	}
	if !now.Before(session.SessionExpiresAt) {
		s.revoke(ctx, session.ID)
		return nil, ErrSessionExpired
	}

	if !s.signer.VerifyRefreshSecret(secret, session.RefreshTokenHash) {
		// A correct session id with a stale secret means the token was
		// already rotated: either reuse or theft. Kill the chain.
		s.logger.Warn("Refresh secret mismatch, revoking session",
			zap.String("session_id", session.ID))
		s.revoke(ctx, session.ID)
		return nil, ErrRefreshInvalid
	}

	newSecret, err := token.NewRefreshSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh secret: %w", err)
	}

	rotated, err := s.sessions.Rotate(ctx, session.ID,
		session.RefreshTokenHash,
		s.signer.HashRefreshSecret(newSecret),
		now.Add(s.cfg.SessionTTL()),
		now.Add(s.cfg.RefreshTTL()),
	)
	if err != nil {
		s.logger.Error("Failed to rotate session", zap.Error(err))
		return nil, fmt.Errorf("rotate session: %w", err)
	}
	if !rotated {
		// Lost the race against a concurrent refresh. Fail closed.
		return nil, ErrRefreshInvalid
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		s.logger.Error("Failed to get session user", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	access, err := s.signer.SignAccessToken(user, session.ID)
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &LoginResult{
		User:         user.Safe(),
		AccessToken:  access,
		RefreshToken: token.ComposeRefreshToken(session.ID, newSecret),
		ExpiresIn:    int64(s.cfg.AccessTTL().Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, rawRefreshToken string) error {
	sessionID, _, ok := token.SplitRefreshToken(rawRefreshToken)
	if !ok {
		return nil
	}
	if err := s.sessions.RevokeSession(ctx, sessionID); err != nil {
		s.logger.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.Info("Session revoked", zap.String("session_id", sessionID))
	return nil
}

func (s *authService) revoke(ctx context.Context, sessionID string) {
	if err := s.sessions.RevokeSession(ctx, sessionID); err != nil {
		s.logger.Error("Failed to revoke session", zap.String("session_id", sessionID), zap.Error(err))
	}
}
