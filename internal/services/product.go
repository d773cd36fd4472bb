package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/patrickmn/go-cache"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductSlugTaken = errors.New("product slug already exists")
)

const (
	productColumns   = `id, slug, name, main_category, sub_category, description, image_url, price_cents, created_at, updated_at`
	categoryCacheKey = "product_categories"
)

// CreateProductInput carries the admin-supplied product fields.
type CreateProductInput struct {
	Slug         string
	Name         string
	MainCategory string
	SubCategory  *string
	Description  string
	ImageURL     string
	PriceCents   *int
}

type ProductService struct {
	db *database.DB
	// cache is nil when caching is disabled.
	cache *cache.Cache
}

// NewProductService caches the category tree for cacheTTL. A TTL of zero or
// less disables the cache.
func NewProductService(db *database.DB, cacheTTL time.Duration) *ProductService {
	s := &ProductService{db: db}
	if cacheTTL > 0 {
		s.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return s
}

func cloneCategories(in []models.CategoryNode) []models.CategoryNode {
	out := make([]models.CategoryNode, len(in))
	for i, node := range in {
		out[i] = models.CategoryNode{Name: node.Name, SubCategories: slices.Clone(node.SubCategories)}
	}
	return out
}

func (s *ProductService) invalidateCategories() {
	if s.cache != nil {
		s.invalidateCategories()
	}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.MainCategory, &p.SubCategory,
		&p.Description, &p.ImageURL, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products ordered by name. Empty filters match everything; the
// sub-category filter only applies together with a main category.
func (s *ProductService) List(ctx context.Context, mainCategory, subCategory string) ([]models.Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case mainCategory != "" && subCategory != "":
		rows, err = s.db.Pool.Query(ctx, `
			SELECT `+productColumns+` FROM products
			WHERE main_category = $1 AND sub_category = $2
			ORDER BY name ASC
		`, mainCategory, subCategory)
	case mainCategory != "":
		rows, err = s.db.Pool.Query(ctx, `
			SELECT `+productColumns+` FROM products
			WHERE main_category = $1
			ORDER BY name ASC
		`, mainCategory)
	default:
		rows, err = s.db.Pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name ASC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, err := scanProduct(s.db.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Categories returns the product category tree. Results are cached until the
// TTL passes or an admin write invalidates them. Callers get their own copy.
func (s *ProductService) Categories(ctx context.Context) ([]models.CategoryNode, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(categoryCacheKey); ok {
			return cloneCategories(cached.([]models.CategoryNode)), nil
		}
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT DISTINCT main_category, sub_category FROM products
		ORDER BY main_category, sub_category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.CategoryNode{}
	position := map[string]int{}
	for rows.Next() {
		var main string
		var sub *string
		if err := rows.Scan(&main, &sub); err != nil {
			return nil, err
		}
		i, seen := position[main]
		if !seen {
			i = len(categories)
			position[main] = i
			categories = append(categories, models.CategoryNode{Name: main, SubCategories: []string{}})
		}
		if sub != nil && *sub != "" {
			categories[i].SubCategories = append(categories[i].SubCategories, *sub)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetDefault(categoryCacheKey, cloneCategories(categories))
	}
	return categories, nil
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	p, err := scanProduct(s.db.Pool.QueryRow(ctx, `
		INSERT INTO products (slug, name, main_category, sub_category, description, image_url, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		in.Slug, in.Name, in.MainCategory, in.SubCategory, in.Description, in.ImageURL, in.PriceCents))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrProductSlugTaken
		}
		return nil, err
	}
	s.invalidateCategories()
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	s.invalidateCategories()
	return nil
}
