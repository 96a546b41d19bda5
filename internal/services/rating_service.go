package services

import (
	"errors"

	"feedsoko/internal/domain"
	"feedsoko/internal/repos"
)

var (
	ErrNotFarmer      = errors.New("only farmers can rate products")
	ErrBadRating      = errors.New("rating must be between 1 and 5")
	ErrUnknownProduct = errors.New("product does not exist")
)

type RatingService struct {
	Ratings  *repos.RatingRepo
	Products *repos.ProductRepo
}

func NewRatingService(ratings *repos.RatingRepo, products *repos.ProductRepo) *RatingService {
	return &RatingService{Ratings: ratings, Products: products}
}

// Rate records a farmer's review. Bounds are pre-checked for a friendly
// error; the store's CHECK constraint is the backstop.
func (s *RatingService) Rate(farmer *domain.User, productID int64, stars int, review string) (int64, error) {
	if farmer.UserType != domain.UserFarmer {
		return 0, ErrNotFarmer
	}
	if stars < 1 || stars > 5 {
		return 0, ErrBadRating
	}
	if p, err := s.Products.Get(productID); err != nil {
		return 0, err
	} else if p == nil {
		return 0, ErrUnknownProduct
	}
	return s.Ratings.Create(&domain.Rating{
		ProductID: productID,
		FarmerID:  farmer.ID,
		Rating:    stars,
		Review:    review,
	})
}

func (s *RatingService) ForProduct(productID int64) ([]domain.Rating, error) {
	return s.Ratings.ListByProduct(productID)
}
