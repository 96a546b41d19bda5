package repos

import (
	"github.com/jmoiron/sqlx"

	"feedsoko/internal/domain"
)

type RatingRepo struct{ db *sqlx.DB }

func NewRatingRepo(db *sqlx.DB) *RatingRepo { return &RatingRepo{db: db} }

// Create inserts a review. The 1-5 bound is backstopped by the CHECK
// constraint; an out-of-range value surfaces as a store error.
func (r *RatingRepo) Create(rt *domain.Rating) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO ratings(product_id,farmer_id,rating,review)
		VALUES(?,?,?,?)`,
		rt.ProductID, rt.FarmerID, rt.Rating, rt.Review)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *RatingRepo) ListByProduct(productID int64) ([]domain.Rating, error) {
	var out []domain.Rating
	err := r.db.Select(&out, `
		SELECT id, product_id, farmer_id, rating, review, created_at
		FROM ratings
		WHERE product_id = ?
		ORDER BY datetime(created_at) DESC, id DESC`, productID)
	return out, err
}

// SummaryForProduct returns the average star value and review count shown on
// product detail screens. A product with no reviews summarizes to (0, 0).
func (r *RatingRepo) SummaryForProduct(productID int64) (domain.RatingSummary, error) {
	var s domain.RatingSummary
	err := r.db.Get(&s, `
		SELECT COALESCE(AVG(rating),0) AS average, COUNT(*) AS count
		FROM ratings
		WHERE product_id = ?`, productID)
	return s, err
}
