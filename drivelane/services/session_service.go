package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/drivelane/drivelane/drivelane/config"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
)

// SessionService issues and resolves signed bearer tokens backed by
// the sessions table. The signature keeps unknown tokens out of the
// database lookup path.
type SessionService struct {
	users  repositories.UserRepository
	secret []byte
}

func NewSessionService(users repositories.UserRepository, secret string) *SessionService {
	return &SessionService{
		users:  users,
		secret: []byte(secret),
	}
}

// Issue creates a session for the user and returns the signed bearer
// token the client should present.
func (s *SessionService) Issue(ctx context.Context, user *models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}

	token := snowflake.New(time.Now()).String()

	session := &models.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(config.SessionTTL),
	}
	if err := s.users.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	slog.Info("Session issued",
		slog.String("type", "sys"),
		slog.String("user", user.Username),
	)
	return s.sign([]byte(token)), nil
}

// Resolve verifies a bearer token and returns the live session with
// its user loaded.
func (s *SessionService) Resolve(ctx context.Context, bearer string) (*models.Session, error) {
	token, err := s.verify(bearer)
	if err != nil {
		return nil, err
	}

	return s.users.GetSession(ctx, string(token))
}

// Revoke deletes the session behind a bearer token.
func (s *SessionService) Revoke(ctx context.Context, bearer string) error {
	token, err := s.verify(bearer)
	if err != nil {
		return err
	}

	return s.users.DeleteSession(ctx, string(token))
}

// PruneExpired deletes sessions past their expiry and returns how many
// were removed.
func (s *SessionService) PruneExpired(ctx context.Context) (int64, error) {
	return s.users.DeleteExpiredSessions(ctx)
}

// sign appends an HMAC-SHA256 signature and base64 encodes the result.
func (s *SessionService) sign(data []byte) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write(data)
	combined := append(data, h.Sum(nil)...)
	return base64.URLEncoding.EncodeToString(combined)
}

// verify checks the signature and returns the original token bytes.
func (s *SessionService) verify(encoded string) ([]byte, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("session secret not configured")
	}

	combined, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	if len(combined) < sha256.Size+1 {
		return nil, fmt.Errorf("invalid token length")
	}

	data := combined[:len(combined)-sha256.Size]
	received := combined[len(combined)-sha256.Size:]

	h := hmac.New(sha256.New, s.secret)
	h.Write(data)
	if !hmac.Equal(received, h.Sum(nil)) {
		return nil, fmt.Errorf("signature verification failed")
	}

	return data, nil
}
