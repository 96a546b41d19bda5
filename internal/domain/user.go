package domain

// UserType is the closed account-role enumeration. The same values are
// enforced by a CHECK constraint on users.user_type.
type UserType string

const (
	UserFarmer UserType = "farmer"
	UserSeller UserType = "seller"
)

func (t UserType) Valid() bool {
	return t == UserFarmer || t == UserSeller
}

type User struct {
	ID           int64    `db:"id" json:"id"`
	Username     string   `db:"username" json:"username"`
	Email        string   `db:"email" json:"email"`
	Phone        string   `db:"phone" json:"phone"`
	UserType     UserType `db:"user_type" json:"userType"`
	FirstName    string   `db:"first_name" json:"firstName"`
	LastName     string   `db:"last_name" json:"lastName"`
	Location     string   `db:"location" json:"location"`
	ProfileImage string   `db:"profile_image" json:"profileImage,omitempty"`
	Hash         string   `db:"password_hash" json:"-"`
	CreatedAt    string   `db:"created_at" json:"createdAt"`
}
