package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/internal/sse"
	"github.com/dimitrije/signshop-api/pkg/dto"
	"github.com/dimitrije/signshop-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type quoteTestDeps struct {
	quotes *testutil.MockQuoteService
	email  *testutil.MockEmailService
	hub    *testutil.MockHub
	app    http.Handler
}

func setupQuoteApp(t *testing.T) quoteTestDeps {
	t.Helper()
	c, err := catalog.New([]catalog.Template{
		{ID: "t1", Name: "Storefront Sign", Category: catalog.Category{Main: "Signs"}, Width: 48, Height: 24},
	})
	require.NoError(t, err)

	d := quoteTestDeps{
		quotes: new(testutil.MockQuoteService),
		email:  new(testutil.MockEmailService),
		hub:    new(testutil.MockHub),
	}
	handler := NewQuoteHandler(d.quotes, services.NewTemplateService(catalog.NewStaticRegistry(c)),
		d.email, d.hub, "sales@example.com", zap.NewNop())

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/quotes", handler.Create)
	app.Get("/admin/quotes", handler.List)
	app.Patch("/admin/quotes/:quoteId", handler.UpdateStatus)
	d.app = app
	return d
}

func strPtr(s string) *string { return &s }

func TestQuoteHandler_Create_Success(t *testing.T) {
	d := setupQuoteApp(t)
	quote := &models.QuoteRequest{
		ID: uuid.New(), Name: "Ana", Email: "ana@example.com", TemplateID: strPtr("t1"),
		Message: "Two signs", Status: models.QuoteStatusNew,
	}

	d.quotes.On("Create", mock.Anything, services.CreateQuoteInput{
		Name: "Ana", Email: "ana@example.com", TemplateID: strPtr("t1"), Message: "Two signs",
	}).Return(quote, nil)
	d.email.On("SendQuoteNotification", "sales@example.com", quote).Return(nil)
	d.hub.On("BroadcastQuoteCreated", sse.QuoteCreatedEvent{
		QuoteID: quote.ID, Name: "Ana", Email: "ana@example.com", TemplateID: quote.TemplateID,
	}).Return()

	rec := postJSON(d.app, http.MethodPost, "/quotes", dto.CreateQuoteRequest{
		Name: " Ana ", Email: "ana@example.com", Phone: strPtr("  "), TemplateID: strPtr("t1"), Message: "Two signs",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	d.quotes.AssertExpectations(t)
	d.email.AssertExpectations(t)
	d.hub.AssertExpectations(t)
}

func TestQuoteHandler_Create_EmailFailureStillSucceeds(t *testing.T) {
	d := setupQuoteApp(t)
	quote := &models.QuoteRequest{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Message: "hi"}

	d.quotes.On("Create", mock.Anything, mock.Anything).Return(quote, nil)
	d.email.On("SendQuoteNotification", mock.Anything, quote).Return(errors.New("smtp down"))
	d.hub.On("BroadcastQuoteCreated", mock.Anything).Return()

	rec := postJSON(d.app, http.MethodPost, "/quotes", dto.CreateQuoteRequest{Name: "Ana", Email: "ana@example.com", Message: "hi"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	d.hub.AssertExpectations(t)
}

func TestQuoteHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateQuoteRequest
		want string
	}{
		{"missing name", dto.CreateQuoteRequest{Email: "a@b.c", Message: "hi"}, "required"},
		{"missing message", dto.CreateQuoteRequest{Name: "Ana", Email: "a@b.c", Message: "   "}, "required"},
		{"bad email", dto.CreateQuoteRequest{Name: "Ana", Email: "ana.example.com", Message: "hi"}, "invalid email"},
		{"unknown template", dto.CreateQuoteRequest{Name: "Ana", Email: "a@b.c", Message: "hi", TemplateID: strPtr("t9")}, "unknown template_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupQuoteApp(t)

			rec := postJSON(d.app, http.MethodPost, "/quotes", tt.req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			d.quotes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestQuoteHandler_List_InvalidStatus(t *testing.T) {
	d := setupQuoteApp(t)
	d.quotes.On("List", mock.Anything, "archived").Return(nil, services.ErrInvalidStatus)

	rec := postJSON(d.app, http.MethodGet, "/admin/quotes?status=archived", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteHandler_List(t *testing.T) {
	d := setupQuoteApp(t)
	d.quotes.On("List", mock.Anything, "").Return([]models.QuoteRequest{{Name: "Ana"}}, nil)

	rec := postJSON(d.app, http.MethodGet, "/admin/quotes", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ana")
}

func TestQuoteHandler_UpdateStatus(t *testing.T) {
	d := setupQuoteApp(t)
	id := uuid.New()
	d.quotes.On("UpdateStatus", mock.Anything, id, models.QuoteStatusQuoted).
		Return(&models.QuoteRequest{ID: id, Status: models.QuoteStatusQuoted}, nil)

	rec := postJSON(d.app, http.MethodPatch, "/admin/quotes/"+id.String(), dto.UpdateQuoteStatusRequest{Status: "quoted"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"quoted"`)
}

func TestQuoteHandler_UpdateStatus_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid status", services.ErrInvalidStatus, http.StatusBadRequest},
		{"not found", services.ErrQuoteNotFound, http.StatusNotFound},
		{"db error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupQuoteApp(t)
			id := uuid.New()
			d.quotes.On("UpdateStatus", mock.Anything, id, "x").Return(nil, tt.err)

			rec := postJSON(d.app, http.MethodPatch, "/admin/quotes/"+id.String(), dto.UpdateQuoteStatusRequest{Status: "x"})

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
