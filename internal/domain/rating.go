package domain

// Rating is a farmer's 1-5 review of a product. Bounds are backstopped by a
// CHECK constraint; rows are never updated or deleted.
type Rating struct {
	ID        int64  `db:"id" json:"id"`
	ProductID int64  `db:"product_id" json:"productId"`
	FarmerID  int64  `db:"farmer_id" json:"farmerId"`
	Rating    int    `db:"rating" json:"rating"`
	Review    string `db:"review" json:"review,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
