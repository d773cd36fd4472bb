package integration

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_Integration_Categories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewProductService(tdb.DB, time.Minute)
	ctx := context.Background()

	sidewalk := "Sidewalk"
	vinyl := "Vinyl"
	fixtures.CreateProduct(t, "Outdoor", &sidewalk)
	fixtures.CreateProduct(t, "Banners", &vinyl)
	fixtures.CreateProduct(t, "Outdoor", &sidewalk)
	fixtures.CreateProduct(t, "Outdoor", nil)

	categories, err := svc.Categories(ctx)

	require.NoError(t, err)
	assert.Equal(t, []models.CategoryNode{
		{Name: "Banners", SubCategories: []string{"Vinyl"}},
		{Name: "Outdoor", SubCategories: []string{"Sidewalk"}},
	}, categories)
}

func TestProductService_Integration_CreateDuplicateSlug(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProductService(tdb.DB, time.Minute)
	ctx := context.Background()

	in := services.CreateProductInput{Slug: "yard-sign", Name: "Yard Sign", MainCategory: "Outdoor"}
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, services.ErrProductSlugTaken)
}
