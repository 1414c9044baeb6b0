// Package session carries the signed-in user explicitly through request paths.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrAnonymous    = errors.New("no session")
	ErrExpired      = errors.New("session expired")
	ErrInvalidToken = errors.New("invalid session token")
)

type Session struct {
	ID        uuid.UUID
	User      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// New starts a session for user lasting ttl from now.
func New(user string, ttl time.Duration, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		User:      strings.TrimSpace(user),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Validate reports whether s may be used at now. A nil session is anonymous.
func (s *Session) Validate(now time.Time) error {
	if s == nil || s.User == "" {
		return ErrAnonymous
	}
	if !now.Before(s.ExpiresAt) {
		return ErrExpired
	}
	return nil
}

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}

// Codec turns sessions into HS256 bearer tokens and back.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewCodec(secret, issuer string) *Codec {
	return &Codec{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// WithClock makes Decode check expiry against now instead of the wall clock.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

func (c *Codec) Encode(s *Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.ID.String(),
		Subject:   s.User,
		Issuer:    c.issuer,
		IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

func (c *Codec) Decode(token string) (*Session, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrExpired
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad id: %v", ErrInvalidToken, err)
	}
	s := &Session{ID: id, User: claims.Subject}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	s.ExpiresAt = claims.ExpiresAt.Time
	return s, nil
}
