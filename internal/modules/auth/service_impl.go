package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/wearlyshop/wearly-backend/internal/modules/user"
)

const (
	tokenTTL  = 24 * time.Hour
	adminRole = "admin"
)

// Config carries the secrets the auth service signs and verifies with.
type Config struct {
	BotToken          string // Telegram bot token, used to verify init data
	JWTSecret         string
	AdminPasswordHash string // bcrypt hash of the staff password
}

type service struct {
	userRepo user.Repository
	cfg      Config
	now      func() time.Time
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, cfg Config) Service {
	return &service{userRepo: userRepo, cfg: cfg, now: time.Now}
}

func (s *service) LoginTelegram(ctx context.Context, initData string) (string, *user.User, error) {
	tgUser, err := VerifyInitData(initData, s.cfg.BotToken, s.now())
	if err != nil {
		return "", nil, err
	}
	if tgUser == nil {
		return "", nil, errors.New("init data carries no user")
	}

	u := &user.User{
		ID:        tgUser.ID,
		FirstName: tgUser.FirstName,
		LastName:  tgUser.LastName,
		Username:  tgUser.Username,
	}
	if err := s.userRepo.Upsert(ctx, u); err != nil {
		return "", nil, fmt.Errorf("failed to store user: %w", err)
	}

	token, err := s.sign(strconv.FormatInt(u.ID, 10), "")
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) LoginAdmin(_ context.Context, password string) (string, error) {
	if s.cfg.AdminPasswordHash == "" {
		return "", errors.New("admin access is not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}
	return s.sign("staff", adminRole)
}

func (s *service) sign(subject, role string) (string, error) {
	claims := &sessionClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			ExpiresAt: s.now().Add(tokenTTL).Unix(),
			IssuedAt:  s.now().Unix(),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

type sessionClaims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
}

func parseToken(raw, secret string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
