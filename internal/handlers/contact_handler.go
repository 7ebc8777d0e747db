package handlers

import (
	"fmt"
	"html"
	"strings"

	"github.com/dommaster/backend/internal/dto"
	"github.com/dommaster/backend/internal/mailer"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	mail mailer.Mailer
}

func NewContactHandler(mail mailer.Mailer) *ContactHandler {
	return &ContactHandler{mail: mail}
}

// Send handles the contact form: the sender gets an auto-reply
// acknowledging the message.
func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "All fields are required",
		})
	}

	body := fmt.Sprintf(`<p>Hello, %s!</p>
<p>Thanks for contacting <b>DomMaster</b>. We received your message and
will get back to you shortly.</p>
<p>— The DomMaster team</p>`, html.EscapeString(req.Name))

	if err := h.mail.Send(req.Email, "DomMaster: thanks for your message", body); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Thank you for your message, %s!", req.Name),
	})
}
