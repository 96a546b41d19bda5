package services_test

import (
	"errors"
	"testing"

	"feedsoko/internal/domain"
	"feedsoko/internal/repos"
	"feedsoko/internal/services"
)

func TestCatalogOwnershipEnforced(t *testing.T) {
	db := opendb(t)
	farmer, seller := seedUsers(t, db)
	catalog := services.NewCatalogService(repos.NewProductRepo(db), repos.NewRatingRepo(db))

	// farmers cannot list products
	if _, err := catalog.CreateProduct(farmer, &domain.Product{
		Name: "Hay Bale", Price: 300, Category: domain.CategoryOther,
	}); !errors.Is(err, services.ErrNotSeller) {
		t.Fatalf("want ErrNotSeller, got %v", err)
	}

	id, err := catalog.CreateProduct(seller, &domain.Product{
		Name: "Sow & Weaner Meal", Price: 2450, Category: domain.CategoryPig, Stock: 25,
	})
	if err != nil {
		t.Fatalf("seller create: %v", err)
	}

	// a different seller cannot edit the listing
	intruder, err := (&services.AuthService{Users: repos.NewUserRepo(db)}).Register(services.Registration{
		Username: "rival_feeds", Email: "rival@feedsoko.test", UserType: domain.UserSeller, Password: "secret1234",
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = catalog.UpdateProduct(intruder, &domain.Product{
		ID: id, Name: "Hijacked", Price: 1, Category: domain.CategoryPig,
	})
	if !errors.Is(err, services.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}

	// and cannot delete it either: plain false through the id+seller pair
	deleted, err := catalog.DeleteProduct(intruder, id)
	if err != nil {
		t.Fatal(err)
	}
	if deleted {
		t.Fatal("intruder deleted another seller's product")
	}

	deleted, err = catalog.DeleteProduct(seller, id)
	if err != nil || !deleted {
		t.Fatalf("owner delete: deleted=%v err=%v", deleted, err)
	}
}

func TestCatalogBrowse(t *testing.T) {
	db := opendb(t)
	catalog := services.NewCatalogService(repos.NewProductRepo(db), repos.NewRatingRepo(db))

	all, err := catalog.Browse("", 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("want 4 seeded products, got %d", len(all))
	}

	poultry, err := catalog.Browse(domain.CategoryPoultry, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(poultry) != 1 || poultry[0].Name != "Layers Mash" {
		t.Fatalf("bad category filter: %+v", poultry)
	}

	if _, err := catalog.Browse("minerals", 100, 0); !errors.Is(err, services.ErrBadCategory) {
		t.Fatalf("want ErrBadCategory, got %v", err)
	}
}
