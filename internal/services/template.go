package services

import (
	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/internal/models"
)

// TemplateService answers template queries against whichever catalog the
// registry currently holds. Each call reads one snapshot.
type TemplateService struct {
	registry *catalog.Registry
}

func NewTemplateService(registry *catalog.Registry) *TemplateService {
	return &TemplateService{registry: registry}
}

func (s *TemplateService) List(b catalog.Browse) []catalog.Template {
	return b.Apply(s.registry.Current())
}

func (s *TemplateService) Categories() []models.CategoryNode {
	c := s.registry.Current()
	mains := c.MainCategories()
	nodes := make([]models.CategoryNode, 0, len(mains))
	for _, main := range mains {
		nodes = append(nodes, models.CategoryNode{Name: main, SubCategories: c.SubCategories(main)})
	}
	return nodes
}

func (s *TemplateService) SubCategories(main string) []string {
	return s.registry.Current().SubCategories(main)
}

func (s *TemplateService) GetByID(id string) (catalog.Template, error) {
	return s.registry.Current().ByID(id)
}

func (s *TemplateService) Count() int {
	return s.registry.Current().Len()
}
