package repos_test

import (
	"testing"

	"feedsoko/internal/domain"
	"feedsoko/internal/repos"
)

func TestRatingBoundsEnforcedByStore(t *testing.T) {
	db := opendb(t)
	ratings := repos.NewRatingRepo(db)
	farmer := seededFarmer(t, repos.NewUserRepo(db))

	if _, err := ratings.Create(&domain.Rating{ProductID: 1, FarmerID: farmer.ID, Rating: 6}); err == nil {
		t.Fatal("rating above 5 must violate the CHECK constraint")
	}
	if _, err := ratings.Create(&domain.Rating{ProductID: 1, FarmerID: farmer.ID, Rating: 0}); err == nil {
		t.Fatal("rating below 1 must violate the CHECK constraint")
	}
	if _, err := ratings.Create(&domain.Rating{ProductID: 1, FarmerID: farmer.ID, Rating: 5, Review: "Hens love it"}); err != nil {
		t.Fatalf("valid rating: %v", err)
	}
}

func TestRatingSummary(t *testing.T) {
	db := opendb(t)
	ratings := repos.NewRatingRepo(db)
	users := repos.NewUserRepo(db)
	farmer := seededFarmer(t, users)
	farmer2 := seededFarmer2(t, users)

	// no reviews yet
	s, err := ratings.SummaryForProduct(2)
	if err != nil {
		t.Fatal(err)
	}
	if s.Count != 0 || s.Average != 0 {
		t.Fatalf("want empty summary, got %+v", s)
	}

	for _, r := range []struct {
		farmer int64
		stars  int
	}{{farmer.ID, 4}, {farmer2.ID, 2}} {
		if _, err := ratings.Create(&domain.Rating{ProductID: 2, FarmerID: r.farmer, Rating: r.stars}); err != nil {
			t.Fatal(err)
		}
	}

	s, err = ratings.SummaryForProduct(2)
	if err != nil {
		t.Fatal(err)
	}
	if s.Count != 2 || s.Average != 3 {
		t.Fatalf("want avg 3 over 2 reviews, got %+v", s)
	}

	list, err := ratings.ListByProduct(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("want 2 reviews, got %d", len(list))
	}
}
