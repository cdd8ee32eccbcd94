package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.SelectContext(ctx, &products, `
		SELECT id, name, price, buying_price, stock, unit_type, category,
		       supplier_id, supplier_name, size, color, image
		FROM products
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product, `
		SELECT id, name, price, buying_price, stock, unit_type, category,
		       supplier_id, supplier_name, size, color, image
		FROM products
		WHERE id = $1
	`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, buying_price, stock, unit_type, category,
		                      supplier_id, supplier_name, size, color, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, product.ID, product.Name, product.Price, product.BuyingPrice, product.Stock,
		product.UnitType, product.Category, product.SupplierID, product.SupplierName,
		product.Size, product.Color, product.Image)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, price = $3, buying_price = $4, stock = $5, unit_type = $6,
		    category = $7, supplier_id = $8, supplier_name = $9, size = $10,
		    color = $11, image = $12, updated_at = NOW()
		WHERE id = $1
	`, product.ID, product.Name, product.Price, product.BuyingPrice, product.Stock,
		product.UnitType, product.Category, product.SupplierID, product.SupplierName,
		product.Size, product.Color, product.Image)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("product %s not found", product.ID)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// Upsert reconciles a snapshot pulled from the upstream sheet. Rows
// are keyed on id so re-running a sync is harmless.
func (r *productRepository) Upsert(ctx context.Context, products []domain.Product) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO products (id, name, price, buying_price, stock, unit_type, category,
			                      supplier_id, supplier_name, size, color, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				buying_price = EXCLUDED.buying_price,
				stock = EXCLUDED.stock,
				unit_type = EXCLUDED.unit_type,
				category = EXCLUDED.category,
				supplier_id = EXCLUDED.supplier_id,
				supplier_name = EXCLUDED.supplier_name,
				size = EXCLUDED.size,
				color = EXCLUDED.color,
				image = EXCLUDED.image,
				updated_at = NOW()
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare product upsert: %w", err)
		}
		defer stmt.Close()

		for _, p := range products {
			if p.ID == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Price, p.BuyingPrice, p.Stock,
				p.UnitType, p.Category, p.SupplierID, p.SupplierName, p.Size, p.Color, p.Image); err != nil {
				return fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
			}
		}
		return nil
	})
}
