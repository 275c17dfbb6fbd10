package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, type, price, stock, min_stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var sku *string
	if err := row.Scan(&p.ID, &sku, &p.Name, &p.Type, &p.Price, &p.Stock, &p.MinStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.SKU = derefString(sku)
	return &p, nil
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, nullIfEmpty(product.SKU), product.Name, product.Type, product.Price,
		product.Stock, product.MinStock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE) para evitar
// actualizaciones perdidas del stock entre flujos concurrentes.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza todos los campos del producto, incluido el stock.
// Solo debe llamarse junto con el registro en el kardex.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, type = $4, price = $5, stock = $6, min_stock = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, nullIfEmpty(product.SKU), product.Name, product.Type, product.Price,
		product.Stock, product.MinStock, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock actualiza solo el contador de existencias.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
