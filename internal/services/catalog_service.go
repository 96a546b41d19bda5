package services

import (
	"errors"

	"feedsoko/internal/domain"
	"feedsoko/internal/repos"
)

var (
	ErrNotSeller   = errors.New("only sellers can manage products")
	ErrNotOwner    = errors.New("product belongs to another seller")
	ErrBadCategory = errors.New("unknown feed category")
)

// CatalogService is the seller/catalog surface. Mutations take the
// authenticated user, not a caller-supplied seller id, so ownership is
// enforced here rather than trusted from the client.
type CatalogService struct {
	Products *repos.ProductRepo
	Ratings  *repos.RatingRepo
}

func NewCatalogService(products *repos.ProductRepo, ratings *repos.RatingRepo) *CatalogService {
	return &CatalogService{Products: products, Ratings: ratings}
}

func (s *CatalogService) Browse(category string, limit, offset int) ([]domain.Product, error) {
	if category != "" {
		if !domain.KnownCategory(category) {
			return nil, ErrBadCategory
		}
		return s.Products.ListByCategory(category)
	}
	return s.Products.List(limit, offset)
}

func (s *CatalogService) BySeller(sellerID int64) ([]domain.Product, error) {
	return s.Products.ListBySeller(sellerID)
}

type ProductDetail struct {
	domain.Product
	Ratings domain.RatingSummary `json:"ratings"`
}

// Detail returns (nil, nil) for a missing product.
func (s *CatalogService) Detail(id int64) (*ProductDetail, error) {
	p, err := s.Products.Get(id)
	if err != nil || p == nil {
		return nil, err
	}
	sum, err := s.Ratings.SummaryForProduct(id)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: *p, Ratings: sum}, nil
}

func (s *CatalogService) CreateProduct(seller *domain.User, p *domain.Product) (int64, error) {
	if seller.UserType != domain.UserSeller {
		return 0, ErrNotSeller
	}
	if !domain.KnownCategory(p.Category) {
		return 0, ErrBadCategory
	}
	p.SellerID = seller.ID
	return s.Products.Create(p)
}

// UpdateProduct reports false when the product does not exist.
func (s *CatalogService) UpdateProduct(seller *domain.User, p *domain.Product) (bool, error) {
	if seller.UserType != domain.UserSeller {
		return false, ErrNotSeller
	}
	existing, err := s.Products.Get(p.ID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if existing.SellerID != seller.ID {
		return false, ErrNotOwner
	}
	if !domain.KnownCategory(p.Category) {
		return false, ErrBadCategory
	}
	return s.Products.Update(p)
}

// DeleteProduct deletes via the (id, sellerID) pair; a mismatched pair is a
// plain false, not an error.
func (s *CatalogService) DeleteProduct(seller *domain.User, id int64) (bool, error) {
	if seller.UserType != domain.UserSeller {
		return false, ErrNotSeller
	}
	return s.Products.Delete(id, seller.ID)
}
