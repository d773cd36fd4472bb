package handlers

import (
	"errors"

	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// BrowseModeHeader tells the client which browse filter produced a listing.
const BrowseModeHeader = "X-Browse-Mode"

type TemplateHandler struct {
	templateService TemplateServiceInterface
}

func NewTemplateHandler(templateService TemplateServiceInterface) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// List serves the browse grid. A non-empty q wins over category and
// subcategory.
func (h *TemplateHandler) List(c *drift.Context) {
	browse := catalog.NewBrowse(c.QueryParam("category"), c.QueryParam("subcategory"), c.QueryParam("q"))

	templates := h.templateService.List(browse)
	results := make([]dto.TemplateSummary, len(templates))
	for i, t := range templates {
		results[i] = dto.NewTemplateSummary(t)
	}

	c.Response.Header().Set(BrowseModeHeader, browse.Mode().String())
	_ = c.JSON(200, results)
}

func (h *TemplateHandler) Categories(c *drift.Context) {
	_ = c.JSON(200, h.templateService.Categories())
}

func (h *TemplateHandler) SubCategories(c *drift.Context) {
	_ = c.JSON(200, h.templateService.SubCategories(c.Param("category")))
}

func (h *TemplateHandler) Get(c *drift.Context) {
	template, err := h.templateService.GetByID(c.Param("templateId"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.NotFound("template not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to load template")
		return
	}

	_ = c.JSON(200, dto.NewTemplateDetail(template))
}
