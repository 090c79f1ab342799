package auth

import (
	"context"
	"errors"
	"time"

	userRepo "chambers/database/repository/user"
	"chambers/models"
	"chambers/utils"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password, so a failed login never reveals which part was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service authenticates the administrator and manages admin sessions. The
// client holds a signed token carrying only the session id.
type Service struct {
	Users    userRepo.UserRepository
	Sessions SessionStore
	secret   []byte
	ttl      time.Duration
}

// NewService assembles the auth service.
func NewService(users userRepo.UserRepository, sessions SessionStore, secret string, ttl time.Duration) *Service {
	return &Service{
		Users:    users,
		Sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// Authenticate verifies the credentials against the stored bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, userRepo.ErrNotFound) {
			utils.GetLogger().Error("failed to fetch user for authentication", zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and, on success, opens a server-side session and
// returns the signed session token for the client cookie.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.issueSession(ctx, user.ID)
}

// issueSession stores a session record and signs a token holding its id.
func (s *Service) issueSession(ctx context.Context, userID string) (string, error) {
	sid := uuid.New().String()
	session := Session{UserID: userID, CreatedAt: time.Now()}
	if err := s.Sessions.Save(ctx, sid, session, s.ttl); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sid": sid,
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Principal resolves a session token back to the administrator it belongs
// to: verify the signature, load the session, then re-hydrate the user by
// repository lookup.
func (s *Service) Principal(ctx context.Context, token string) (*models.User, error) {
	sid, err := s.sessionID(token)
	if err != nil {
		return nil, ErrNoSession
	}
	session, err := s.Sessions.Get(ctx, sid)
	if err != nil {
		return nil, ErrNoSession
	}
	user, err := s.Users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrNoSession
	}
	return user, nil
}

// Logout destroys the server-side session. An already-dead token is not an
// error.
func (s *Service) Logout(ctx context.Context, token string) {
	sid, err := s.sessionID(token)
	if err != nil {
		return
	}
	if err := s.Sessions.Delete(ctx, sid); err != nil {
		utils.GetLogger().Warn("failed to delete session", zap.Error(err))
	}
}

func (s *Service) sessionID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrNoSession
	}
	return sid, nil
}
