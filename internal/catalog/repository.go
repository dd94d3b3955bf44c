package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stylesphere/storefront/internal/domain"
)

// listLimit caps catalog listings; the storefront paginates client-side
// within this window.
const listLimit = 50

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CategoryTree loads all categories flat and nests them in application
// code. The table is small; one query beats a recursive fetch per node.
func (r *Repository) CategoryTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(parent_id::text, ''), COALESCE(description, '')
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buildCategoryTree(categories), nil
}

// buildCategoryTree nests a flat category list by parent id. Categories
// whose parent is missing from the list are treated as roots rather than
// dropped.
func buildCategoryTree(categories []domain.Category) []*domain.CategoryNode {
	nodes := make(map[string]*domain.CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &domain.CategoryNode{Category: c, Children: []*domain.CategoryNode{}}
	}

	var roots []*domain.CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if parent, ok := nodes[c.ParentID]; ok && c.ParentID != c.ID {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	if roots == nil {
		roots = []*domain.CategoryNode{}
	}
	return roots
}

func (r *Repository) Sizes(ctx context.Context) ([]domain.Size, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name FROM sizes ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	sizes := []domain.Size{}
	for rows.Next() {
		var s domain.Size
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}

// ProductFilter narrows a catalog listing. CategoryID includes the whole
// subtree rooted at that category.
type ProductFilter struct {
	CategoryID string
	Search     string
}

// Products lists active products that have at least one image, with
// stock summed across variants and the primary image attached.
func (r *Repository) Products(ctx context.Context, filter ProductFilter) ([]domain.ProductSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		WITH RECURSIVE subtree AS (
			SELECT id FROM categories WHERE id = NULLIF($1, '')::uuid
			UNION
			SELECT c.id FROM categories c JOIN subtree s ON c.parent_id = s.id
		)
		SELECT p.id, p.name, p.description, p.price, c.name,
			COALESCE(SUM(pv.available_stock), 0),
			COALESCE((
				SELECT pi.image_url FROM product_images pi
				WHERE pi.product_id = p.id
				ORDER BY pi.is_primary DESC, pi.display_order
				LIMIT 1
			), '')
		FROM products p
		JOIN categories c ON c.id = p.category_id
		LEFT JOIN product_variants pv ON pv.product_id = p.id
		WHERE p.status = 'Active'
		  AND ($1 = '' OR p.category_id IN (SELECT id FROM subtree))
		  AND ($2 = '' OR p.name ILIKE '%' || $2 || '%' OR p.description ILIKE '%' || $2 || '%')
		  AND EXISTS (SELECT 1 FROM product_images pi WHERE pi.product_id = p.id)
		GROUP BY p.id, p.name, p.description, p.price, c.name
		ORDER BY p.name
		LIMIT $3
	`, filter.CategoryID, filter.Search, listLimit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []domain.ProductSummary{}
	for rows.Next() {
		var p domain.ProductSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryName, &p.TotalStock, &p.ImageURL); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ProductByID returns the full detail page payload: the product, its
// size/color variants with live stock, and every image in display order.
func (r *Repository) ProductByID(ctx context.Context, productID string) (*domain.ProductDetail, error) {
	detail := &domain.ProductDetail{}

	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.description, p.price, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.status = 'Active'
	`, productID).Scan(&detail.ID, &detail.Name, &detail.Description, &detail.Price, &detail.CategoryName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	variantRows, err := r.db.QueryContext(ctx, `
		SELECT pv.id, pv.size_id, s.name, pv.color_id, col.name, COALESCE(col.hex_code, ''),
			pv.sku, pv.available_stock
		FROM product_variants pv
		JOIN sizes s ON s.id = pv.size_id
		JOIN colors col ON col.id = pv.color_id
		WHERE pv.product_id = $1
		ORDER BY s.name, col.name
	`, productID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = variantRows.Close() }()

	detail.Variants = []domain.Variant{}
	for variantRows.Next() {
		var v domain.Variant
		if err := variantRows.Scan(&v.ID, &v.SizeID, &v.SizeName, &v.ColorID, &v.ColorName, &v.HexCode, &v.SKU, &v.Stock); err != nil {
			return nil, err
		}
		detail.TotalStock += v.Stock
		detail.Variants = append(detail.Variants, v)
	}
	if err := variantRows.Err(); err != nil {
		return nil, err
	}

	imageRows, err := r.db.QueryContext(ctx, `
		SELECT image_url, is_primary, display_order
		FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, display_order
	`, productID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = imageRows.Close() }()

	detail.Images = []domain.ProductImage{}
	for imageRows.Next() {
		var img domain.ProductImage
		if err := imageRows.Scan(&img.URL, &img.IsPrimary, &img.DisplayOrder); err != nil {
			return nil, err
		}
		if img.IsPrimary && detail.ImageURL == "" {
			detail.ImageURL = img.URL
		}
		detail.Images = append(detail.Images, img)
	}
	return detail, imageRows.Err()
}
