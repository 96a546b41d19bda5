package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"feedsoko/internal/domain"
	"feedsoko/internal/repos"
)

var (
	ErrBadCreds    = errors.New("invalid email or password")
	ErrEmailTaken  = errors.New("email already registered")
	ErrNameTaken   = errors.New("username already taken")
	ErrBadUserType = errors.New("user type must be farmer or seller")
)

type AuthService struct {
	Users *repos.UserRepo
}

type Registration struct {
	Username  string
	Email     string
	Phone     string
	UserType  domain.UserType
	FirstName string
	LastName  string
	Location  string
	Password  string
}

// Register creates an account. Username/email uniqueness is pre-checked for
// friendly errors and backstopped by the store's unique constraints.
func (s *AuthService) Register(reg Registration) (*domain.User, error) {
	if !reg.UserType.Valid() {
		return nil, ErrBadUserType
	}
	if u, err := s.Users.ByEmail(reg.Email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrEmailTaken
	}
	if u, err := s.Users.ByUsername(reg.Username); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrNameTaken
	}

	h, err := bcrypt.GenerateFromPassword([]byte(reg.Password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Username:  reg.Username,
		Email:     reg.Email,
		Phone:     reg.Phone,
		UserType:  reg.UserType,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Location:  reg.Location,
		Hash:      string(h),
	}
	id, err := s.Users.Create(u)
	if err != nil {
		return nil, err
	}
	return s.Users.ByID(id)
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil || u == nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
