package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"feedsoko/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, seller_id, name, description, price, category, stock, image, weight,
  brand, ingredients, nutritional_info, certificate,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Create(p *domain.Product) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO products(seller_id,name,description,price,category,stock,image,weight,brand,ingredients,nutritional_info,certificate)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.SellerID, p.Name, p.Description, p.Price, p.Category, p.Stock,
		p.Image, p.Weight, p.Brand, p.Ingredients, p.NutritionalInfo, p.Certificate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) List(limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *ProductRepo) ListBySeller(sellerID int64) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE seller_id = ?
	  ORDER BY created_at DESC`, sellerID)
	return out, err
}

func (r *ProductRepo) ListByCategory(category string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category = ?
	  ORDER BY created_at DESC`, category)
	return out, err
}

// Get returns (nil, nil) when the product does not exist.
func (r *ProductRepo) Get(id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update rewrites every mutable field and reports whether a row changed.
// A missing id yields false, not an error.
func (r *ProductRepo) Update(p *domain.Product) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE products
		SET name=?, description=?, price=?, category=?, stock=?, image=?,
		    weight=?, brand=?, ingredients=?, nutritional_info=?, certificate=?,
		    updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		p.Name, p.Description, p.Price, p.Category, p.Stock, p.Image,
		p.Weight, p.Brand, p.Ingredients, p.NutritionalInfo, p.Certificate, p.ID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes a product only when id and sellerID match together, so a
// seller cannot delete another seller's listing through this call.
func (r *ProductRepo) Delete(id, sellerID int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=? AND seller_id=?`, id, sellerID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// AdjustStock subtracts sold units if enough stock exists; reports false when
// stock would go negative.
func (r *ProductRepo) AdjustStock(id int64, by int) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE products SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?`, by, id, by)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
