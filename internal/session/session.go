// Package session issues and reads the signed session cookie. The
// cookie is a 30-day HS256 JWT carrying user id, display name, email
// and role; it is the only ambient state the handlers consult, and it
// is always turned into an explicit Identity before a service call.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dommaster/backend/internal/config"
	"github.com/dommaster/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller as proven by the session cookie.
type Identity struct {
	UserID uint
	Name   string
	Email  string
	Role   models.Role
}

type Manager struct {
	secret     []byte
	expiry     time.Duration
	cookieName string
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret:     []byte(cfg.SessionSecret),
		expiry:     cfg.SessionExpiry,
		cookieName: cfg.SessionCookie,
	}
}

func (m *Manager) CookieName() string { return m.cookieName }

func (m *Manager) Secret() []byte { return m.secret }

// Token signs a session credential for user.
func (m *Manager) Token(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(m.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// SignIn issues a session for user and sets the cookie on the response.
func (m *Manager) SignIn(c *fiber.Ctx, user *models.User) error {
	token, err := m.Token(user)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Expires:  time.Now().Add(m.expiry),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return nil
}

func (m *Manager) SignOut(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// Parse validates a raw token string and returns the identity it
// carries.
func (m *Manager) Parse(raw string) (*Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return identityFromClaims(claims)
}

// Peek resolves the caller's identity on routes where authentication is
// optional. Returns (nil, false) for anonymous or invalid sessions.
func (m *Manager) Peek(c *fiber.Ctx) (*Identity, bool) {
	raw := c.Cookies(m.cookieName)
	if raw == "" {
		return nil, false
	}
	ident, err := m.Parse(raw)
	if err != nil {
		return nil, false
	}
	return ident, true
}

// FromContext extracts the identity placed in locals by the session
// guard middleware.
func FromContext(c *fiber.Ctx) (*Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("no session in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid session claims")
	}
	return identityFromClaims(claims)
}

func identityFromClaims(claims jwt.MapClaims) (*Identity, error) {
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sub claim: %w", err)
	}
	roleStr, _ := claims["role"].(string)
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	return &Identity{UserID: uint(id), Name: name, Email: email, Role: role}, nil
}
