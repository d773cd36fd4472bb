package handlers

import (
	"bytes"
	"errors"
	"strings"

	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/internal/middleware"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type DesignHandler struct {
	designService   DesignServiceInterface
	templateService TemplateServiceInterface
}

func NewDesignHandler(designService DesignServiceInterface, templateService TemplateServiceInterface) *DesignHandler {
	return &DesignHandler{
		designService:   designService,
		templateService: templateService,
	}
}

func toDesignResponse(d *models.Design) dto.DesignResponse {
	return dto.DesignResponse{
		ID:         d.ID,
		TemplateID: d.TemplateID,
		Name:       d.Name,
		Width:      d.Width,
		Height:     d.Height,
		Document:   d.Document,
		Version:    d.Version,
		UpdatedAt:  d.UpdatedAt,
	}
}

// Create starts a design from a catalog template. The template's document
// is copied at creation time; later catalog reloads do not touch it.
func (h *DesignHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateDesignRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		c.BadRequest("template_id is required")
		return
	}

	tmpl, err := h.templateService.GetByID(strings.TrimSpace(req.TemplateID))
	if errors.Is(err, catalog.ErrNotFound) {
		c.NotFound("template not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to create design")
		return
	}

	design, err := h.designService.CreateFromTemplate(c.Request.Context(), userID, tmpl, strings.TrimSpace(req.Name))
	if err != nil {
		c.InternalServerError("failed to create design")
		return
	}

	_ = c.JSON(201, toDesignResponse(design))
}

func (h *DesignHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	designs, err := h.designService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.InternalServerError("failed to list designs")
		return
	}

	results := make([]dto.DesignResponse, len(designs))
	for i := range designs {
		results[i] = toDesignResponse(&designs[i])
	}
	_ = c.JSON(200, results)
}

func (h *DesignHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	designID, err := uuid.Parse(c.Param("designId"))
	if err != nil {
		c.BadRequest("invalid design id")
		return
	}

	design, err := h.designService.GetByID(c.Request.Context(), designID, userID)
	if errors.Is(err, services.ErrDesignNotFound) {
		c.NotFound("design not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to get design")
		return
	}

	_ = c.JSON(200, toDesignResponse(design))
}

// Update saves editor changes. The client sends the version it loaded; a
// stale version is rejected with 409 so the editor can reload.
func (h *DesignHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	designID, err := uuid.Parse(c.Param("designId"))
	if err != nil {
		c.BadRequest("invalid design id")
		return
	}

	var req dto.UpdateDesignRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Version < 1 {
		c.BadRequest("version is required")
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.BadRequest("name cannot be empty")
			return
		}
		req.Name = &name
	}
	if doc := bytes.TrimSpace(req.Document); len(req.Document) > 0 && (len(doc) == 0 || doc[0] != '{') {
		c.BadRequest("document must be a json object")
		return
	}

	design, err := h.designService.Update(c.Request.Context(), designID, userID, req.Name, req.Document, req.Version)
	switch {
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		c.BadRequest("no fields to update")
		return
	case errors.Is(err, services.ErrDesignNotFound):
		c.NotFound("design not found")
		return
	case errors.Is(err, services.ErrVersionConflict):
		_ = c.JSON(409, map[string]string{"error": "design was modified by another session"})
		return
	case err != nil:
		c.InternalServerError("failed to update design")
		return
	}

	_ = c.JSON(200, toDesignResponse(design))
}

func (h *DesignHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	designID, err := uuid.Parse(c.Param("designId"))
	if err != nil {
		c.BadRequest("invalid design id")
		return
	}

	err = h.designService.Delete(c.Request.Context(), designID, userID)
	if errors.Is(err, services.ErrDesignNotFound) {
		c.NotFound("design not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to delete design")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "design deleted"})
}
