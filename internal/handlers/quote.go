package handlers

import (
	"errors"
	"strings"

	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/internal/sse"
	"github.com/dimitrije/signshop-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

const maxQuoteMessageLen = 5000

type QuoteHandler struct {
	quoteService    QuoteServiceInterface
	templateService TemplateServiceInterface
	emailService    EmailServiceInterface
	hub             HubInterface
	notifyEmail     string
	logger          *zap.Logger
}

func NewQuoteHandler(
	quoteService QuoteServiceInterface,
	templateService TemplateServiceInterface,
	emailService EmailServiceInterface,
	hub HubInterface,
	notifyEmail string,
	logger *zap.Logger,
) *QuoteHandler {
	return &QuoteHandler{
		quoteService:    quoteService,
		templateService: templateService,
		emailService:    emailService,
		hub:             hub,
		notifyEmail:     notifyEmail,
		logger:          logger,
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (h *QuoteHandler) Create(c *drift.Context) {
	var req dto.CreateQuoteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	in := services.CreateQuoteInput{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      trimOptional(req.Phone),
		Company:    trimOptional(req.Company),
		Product:    trimOptional(req.Product),
		TemplateID: trimOptional(req.TemplateID),
		Message:    strings.TrimSpace(req.Message),
	}
	if in.Name == "" || in.Email == "" || in.Message == "" {
		c.BadRequest("name, email and message are required")
		return
	}
	if !strings.Contains(in.Email, "@") {
		c.BadRequest("invalid email address")
		return
	}
	if len(in.Message) > maxQuoteMessageLen {
		c.BadRequest("message is too long")
		return
	}
	if in.TemplateID != nil {
		if _, err := h.templateService.GetByID(*in.TemplateID); errors.Is(err, catalog.ErrNotFound) {
			c.BadRequest("unknown template_id")
			return
		}
	}

	quote, err := h.quoteService.Create(c.Request.Context(), in)
	if err != nil {
		h.logger.Error("failed to store quote request", zap.Error(err))
		c.InternalServerError("failed to submit quote request")
		return
	}

	if err := h.emailService.SendQuoteNotification(h.notifyEmail, quote); err != nil {
		h.logger.Warn("quote notification email failed", zap.Stringer("quote_id", quote.ID), zap.Error(err))
	}
	h.hub.BroadcastQuoteCreated(sse.QuoteCreatedEvent{
		QuoteID:    quote.ID,
		Name:       quote.Name,
		Email:      quote.Email,
		TemplateID: quote.TemplateID,
	})

	_ = c.JSON(201, quote)
}

func (h *QuoteHandler) List(c *drift.Context) {
	quotes, err := h.quoteService.List(c.Request.Context(), c.QueryParam("status"))
	if errors.Is(err, services.ErrInvalidStatus) {
		c.BadRequest("invalid status")
		return
	}
	if err != nil {
		h.logger.Error("failed to list quote requests", zap.Error(err))
		c.InternalServerError("failed to list quote requests")
		return
	}
	_ = c.JSON(200, quotes)
}

func (h *QuoteHandler) UpdateStatus(c *drift.Context) {
	quoteID, err := uuid.Parse(c.Param("quoteId"))
	if err != nil {
		c.BadRequest("invalid quote id")
		return
	}

	var req dto.UpdateQuoteStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	quote, err := h.quoteService.UpdateStatus(c.Request.Context(), quoteID, req.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		c.BadRequest("invalid status")
		return
	case errors.Is(err, services.ErrQuoteNotFound):
		c.NotFound("quote request not found")
		return
	case err != nil:
		c.InternalServerError("failed to update quote request")
		return
	}
	_ = c.JSON(200, quote)
}
