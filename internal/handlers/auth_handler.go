package handlers

import (
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/dommaster/backend/internal/config"
	"github.com/dommaster/backend/internal/dto"
	"github.com/dommaster/backend/internal/mailer"
	"github.com/dommaster/backend/internal/services"
	"github.com/dommaster/backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth     *services.AuthService
	google   *services.GoogleIDTokenClient
	sessions *session.Manager
	mail     mailer.Mailer
	cfg      *config.Config
}

func NewAuthHandler(
	auth *services.AuthService,
	google *services.GoogleIDTokenClient,
	sessions *session.Manager,
	mail mailer.Mailer,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{auth: auth, google: google, sessions: sessions, mail: mail, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	user, token, err := h.auth.Register(services.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return respondError(c, err)
	}

	// Registration is already persisted; a mail outage should not make
	// the request fail.
	if err := h.mail.Send(user.Email, "Confirm your email — DomMaster", h.confirmationBody(user.Name, user.ID, token)); err != nil {
		slog.Error("failed to send confirmation email", "user_id", user.ID, "error", err)
	}

	return c.JSON(fiber.Map{
		"message": "Registration successful. Check your inbox to confirm your email.",
		"user":    dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) confirmationBody(name string, userID uint, token string) string {
	link := fmt.Sprintf("%s/api/auth/confirm-email?userId=%d&token=%s",
		h.cfg.PublicBaseURL, userID, url.QueryEscape(token))
	return fmt.Sprintf(`<p>Hello, %s!</p>
<p>Thanks for signing up with <b>DomMaster</b>.</p>
<p>To confirm your email, follow this link:</p>
<p><a href=%q>Confirm email</a></p>
<p>If you did not register, just ignore this message.</p>`,
		html.EscapeString(name), link)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	user, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.sessions.SignIn(c, user); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Signed in successfully",
		"user":    dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.SignOut(c)
	return c.JSON(fiber.Map{"message": "Signed out"})
}

// ConfirmEmail redeems the emailed token and redirects to the site with
// a flag the frontend turns into a toast. A valid confirmation also
// signs the user in.
func (h *AuthHandler) ConfirmEmail(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 64)
	if err != nil {
		return h.redirectConfirmError(c, "invalid confirmation link")
	}

	user, err := h.auth.ConfirmEmail(uint(userID), c.Query("token"))
	if err != nil {
		return h.redirectConfirmError(c, err.Error())
	}

	if err := h.sessions.SignIn(c, user); err != nil {
		slog.Error("failed to sign in after confirmation", "user_id", user.ID, "error", err)
	}

	return c.Redirect(h.cfg.PublicBaseURL + "/?emailConfirmed=1")
}

func (h *AuthHandler) redirectConfirmError(c *fiber.Ctx, msg string) error {
	return c.Redirect(h.cfg.PublicBaseURL + "/?emailConfirmError=" + url.QueryEscape(msg))
}

// Check reports whether the caller has a valid session; it never fails.
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	ident, ok := h.sessions.Peek(c)
	if !ok {
		return c.JSON(dto.AuthCheckResponse{Authenticated: false})
	}
	return c.JSON(dto.AuthCheckResponse{
		Authenticated: true,
		User: &dto.UserResponse{
			ID:    ident.UserID,
			Name:  ident.Name,
			Email: ident.Email,
			Role:  string(ident.Role),
		},
	})
}

// GoogleSignIn verifies a Google ID token from the client-side sign-in
// flow and establishes a session for the asserted identity.
func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req dto.GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}
	if req.IDToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "id_token is required",
		})
	}

	claims, err := h.google.VerifyToken(req.IDToken, h.cfg.GoogleClientID)
	if err != nil {
		slog.Error("google token verification failed", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not verify Google identity",
		})
	}

	user, err := h.auth.LoginWithGoogle(claims.Email, claims.Name)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.sessions.SignIn(c, user); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Signed in with Google",
		"user":    dto.NewUserResponse(user),
	})
}
