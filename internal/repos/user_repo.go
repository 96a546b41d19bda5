package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"feedsoko/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new account and returns its generated id. Username and
// email collisions surface as constraint errors from the store.
func (r *UserRepo) Create(u *domain.User) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO users(username,email,phone,user_type,first_name,last_name,location,profile_image,password_hash)
		VALUES(?,?,?,?,?,?,?,?,?)`,
		u.Username, u.Email, u.Phone, u.UserType, u.FirstName, u.LastName, u.Location, u.ProfileImage, u.Hash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const userCols = `id,username,email,phone,user_type,first_name,last_name,location,profile_image,password_hash,created_at`

// ByEmail returns (nil, nil) when no account matches; absence is not an error.
func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT `+userCols+` FROM users WHERE username=?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) BindSession(sid string, userID int64) error {
	_, err := r.db.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `
      SELECT u.id,u.username,u.email,u.phone,u.user_type,u.first_name,u.last_name,
             u.location,u.profile_image,u.password_hash,u.created_at
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.db.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
