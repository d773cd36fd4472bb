package dto

import (
	"encoding/json"

	"github.com/dimitrije/signshop-api/internal/catalog"
)

// TemplateSummary is a browse-grid entry. The document is left out.
type TemplateSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MainCategory string   `json:"main_category"`
	SubCategory  string   `json:"sub_category,omitempty"`
	Thumbnail    string   `json:"thumbnail"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags"`
}

type TemplateDetail struct {
	TemplateSummary
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Document json.RawMessage `json:"document"`
}

func NewTemplateSummary(t catalog.Template) TemplateSummary {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TemplateSummary{
		ID:           t.ID,
		Name:         t.Name,
		MainCategory: t.Category.Main,
		SubCategory:  t.Category.Sub,
		Thumbnail:    t.Thumbnail,
		Description:  t.Description,
		Tags:         tags,
	}
}

func NewTemplateDetail(t catalog.Template) TemplateDetail {
	doc := t.Document
	if len(doc) == 0 {
		doc = json.RawMessage("{}")
	}
	return TemplateDetail{
		TemplateSummary: NewTemplateSummary(t),
		Width:           t.Width,
		Height:          t.Height,
		Document:        doc,
	}
}
