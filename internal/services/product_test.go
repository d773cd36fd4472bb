package services

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{
	"id", "slug", "name", "main_category", "sub_category", "description", "image_url", "price_cents", "created_at", "updated_at",
}

func setupProductService(t *testing.T) (*ProductService, pgxmock.PgxPoolIface) {
	return setupProductServiceTTL(t, time.Minute)
}

func setupProductServiceTTL(t *testing.T, ttl time.Duration) (*ProductService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewProductService(db, ttl), mock
}

func expectCategoryQuery(mock pgxmock.PgxPoolIface) {
	mock.ExpectQuery(`SELECT DISTINCT main_category, sub_category FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"main_category", "sub_category"}).
			AddRow("Outdoor", strPtr("Sidewalk")))
}

func strPtr(s string) *string { return &s }

func TestProductService_List_All(t *testing.T) {
	svc, mock := setupProductService(t)
	now := time.Now()

	rows := pgxmock.NewRows(productRowColumns).
		AddRow(uuid.New(), "a-frame", "A-Frame", "Outdoor", strPtr("Sidewalk"), "", "", nil, now, now).
		AddRow(uuid.New(), "banner", "Banner", "Indoor", nil, "", "", nil, now, now)
	mock.ExpectQuery(`SELECT .+ FROM products ORDER BY name`).WillReturnRows(rows)

	products, err := svc.List(context.Background(), "", "")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a-frame", products[0].Slug)
	assert.Nil(t, products[1].SubCategory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_List_ByCategory(t *testing.T) {
	svc, mock := setupProductService(t)

	mock.ExpectQuery(`SELECT .+ FROM products WHERE main_category = \$1 AND sub_category = \$2`).
		WithArgs("Outdoor", "Sidewalk").
		WillReturnRows(pgxmock.NewRows(productRowColumns))

	products, err := svc.List(context.Background(), "Outdoor", "Sidewalk")

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_List_SubCategoryIgnoredWithoutMain(t *testing.T) {
	svc, mock := setupProductService(t)

	mock.ExpectQuery(`SELECT .+ FROM products ORDER BY name`).
		WillReturnRows(pgxmock.NewRows(productRowColumns))

	_, err := svc.List(context.Background(), "", "Sidewalk")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_GetBySlug_NotFound(t *testing.T) {
	svc, mock := setupProductService(t)

	mock.ExpectQuery(`SELECT .+ FROM products WHERE slug`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetBySlug(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_Categories_CachedUntilWrite(t *testing.T) {
	svc, mock := setupProductService(t)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`SELECT DISTINCT main_category, sub_category FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"main_category", "sub_category"}).
			AddRow("Indoor", nil).
			AddRow("Outdoor", strPtr("Sidewalk")).
			AddRow("Outdoor", strPtr("Storefront")))

	want := []models.CategoryNode{
		{Name: "Indoor", SubCategories: []string{}},
		{Name: "Outdoor", SubCategories: []string{"Sidewalk", "Storefront"}},
	}

	first, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, first)

	// Served from cache; no second query expected.
	second, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, second)

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("sign", "Sign", "Vehicle", (*string)(nil), "", "", (*int)(nil)).
		WillReturnRows(pgxmock.NewRows(productRowColumns).
			AddRow(uuid.New(), "sign", "Sign", "Vehicle", nil, "", "", nil, now, now))
	_, err = svc.Create(ctx, CreateProductInput{Slug: "sign", Name: "Sign", MainCategory: "Vehicle"})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT DISTINCT main_category, sub_category FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"main_category", "sub_category"}).
			AddRow("Vehicle", nil))

	third, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryNode{{Name: "Vehicle", SubCategories: []string{}}}, third)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_Create_DuplicateSlug(t *testing.T) {
	svc, mock := setupProductService(t)

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("sign", "Sign", "Vehicle", (*string)(nil), "", "", (*int)(nil)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Create(context.Background(), CreateProductInput{Slug: "sign", Name: "Sign", MainCategory: "Vehicle"})

	assert.ErrorIs(t, err, ErrProductSlugTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_Delete_NotFound(t *testing.T) {
	svc, mock := setupProductService(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM products WHERE id`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_Categories_CallerCannotMutateCache(t *testing.T) {
	svc, mock := setupProductService(t)
	ctx := context.Background()
	expectCategoryQuery(mock)

	first, err := svc.Categories(ctx)
	require.NoError(t, err)
	first[0].Name = "Changed"
	first[0].SubCategories[0] = "Changed"

	second, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryNode{{Name: "Outdoor", SubCategories: []string{"Sidewalk"}}}, second)

	second[0].SubCategories[0] = "Changed again"
	third, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sidewalk", third[0].SubCategories[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_Categories_ZeroTTLDisablesCache(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		t.Run(ttl.String(), func(t *testing.T) {
			svc, mock := setupProductServiceTTL(t, ttl)
			ctx := context.Background()
			expectCategoryQuery(mock)
			expectCategoryQuery(mock)

			_, err := svc.Categories(ctx)
			require.NoError(t, err)
			_, err = svc.Categories(ctx)
			require.NoError(t, err)

			mock.ExpectExec(`DELETE FROM products`).WithArgs(pgxmock.AnyArg()).
				WillReturnResult(pgxmock.NewResult("DELETE", 1))
			require.NoError(t, svc.Delete(ctx, uuid.New()))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
