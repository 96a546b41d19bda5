package handlers

import (
	"github.com/jmoiron/sqlx"

	"feedsoko/internal/repos"
	"feedsoko/internal/services"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	MessageHandler *MessageHandler
	RatingHandler  *RatingHandler
	QAHandler      *QAHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	msgRepo := repos.NewMessageRepo(db)
	ratingRepo := repos.NewRatingRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, ratingRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo)
	chatSvc := services.NewChatService(msgRepo, userRepo)
	ratingSvc := services.NewRatingService(ratingRepo, prodRepo)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: auth},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc},
		MessageHandler: &MessageHandler{Chat: chatSvc},
		RatingHandler:  &RatingHandler{Ratings: ratingSvc},
		QAHandler:      &QAHandler{},
	}
}
