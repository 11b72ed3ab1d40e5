package services

import (
	"testing"

	"github.com/Ayush-478/Veggio/models"
)

func TestCatalogListFiltersAndPages(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.food(t, "Green Curry "+string(rune('A'+i)), 9, func(food *models.Food) { food.IsVegan = true })
	}
	f.food(t, "Cold Brew", 4, func(food *models.Food) { food.Category = models.CategoryBeverage })
	f.food(t, "Retired Dish", 4, func(food *models.Food) { food.IsAvailable = false })

	page, err := f.catalog.List(f.ctx, CatalogQuery{Vegan: true, Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || len(page.Foods) != 2 {
		t.Errorf("page = total %d pages %d foods %d", page.Total, page.TotalPages, len(page.Foods))
	}

	page, err = f.catalog.List(f.ctx, CatalogQuery{Search: "brew"})
	if err != nil || page.Total != 1 || page.Foods[0].Name != "Cold Brew" {
		t.Errorf("search = %+v, %v", page, err)
	}

	page, err = f.catalog.List(f.ctx, CatalogQuery{})
	if err != nil || page.Total != 6 {
		t.Errorf("available items = %+v, %v", page, err)
	}

	_, err = f.catalog.List(f.ctx, CatalogQuery{Category: "brunch"})
	wantKind(t, err, KindValidation)
}

func TestCatalogReviewOncePerUser(t *testing.T) {
	f := newFixture(t)
	dana := f.user(t, "dana", models.RoleUser)
	eli := f.user(t, "eli", models.RoleUser)
	soup := f.food(t, "Soup", 6, nil)

	if _, err := f.catalog.Review(f.ctx, dana, soup.ID.Hex(), 5, "lovely"); err != nil {
		t.Fatalf("review: %v", err)
	}
	food, err := f.catalog.Review(f.ctx, eli, soup.ID.Hex(), 2, "")
	if err != nil {
		t.Fatalf("second reviewer: %v", err)
	}
	if food.AverageRating != 3.5 || len(food.Ratings) != 2 {
		t.Errorf("average = %v over %d ratings", food.AverageRating, len(food.Ratings))
	}

	_, err = f.catalog.Review(f.ctx, dana, soup.ID.Hex(), 4, "again")
	wantKind(t, err, KindValidation)
	_, err = f.catalog.Review(f.ctx, dana, soup.ID.Hex(), 0, "")
	wantKind(t, err, KindValidation)
	_, err = f.catalog.Review(f.ctx, dana, "65f1c0ffee0000000000beef", 4, "")
	wantKind(t, err, KindNotFound)
}

func TestCatalogUpdateKeepsRatings(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	soup := f.food(t, "Soup", 6, nil)
	if _, err := f.catalog.Review(f.ctx, user, soup.ID.Hex(), 4, ""); err != nil {
		t.Fatal(err)
	}

	changes := *soup
	changes.Price = 7.5
	changes.Ratings = nil
	updated, err := f.catalog.Update(f.ctx, soup.ID.Hex(), &changes)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 7.5 || len(updated.Ratings) != 1 || updated.AverageRating != 4 {
		t.Errorf("updated = %+v", updated)
	}

	if err := f.catalog.Delete(f.ctx, soup.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	wantKind(t, f.catalog.Delete(f.ctx, soup.ID.Hex()), KindNotFound)
}

func TestCatalogRecommend(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	user.DietaryPreferences = []string{"gluten-free"}
	chef := f.food(t, "Risotto", 14, func(food *models.Food) { food.IsRecommended = true; food.IsGlutenFree = true })
	f.food(t, "Lasagne", 13, func(food *models.Food) { food.IsRecommended = true; food.IsPopular = true })

	picks, err := f.catalog.Recommend(f.ctx, user)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(picks.Recommended) != 1 || picks.Recommended[0].ID != chef.ID {
		t.Errorf("recommended = %+v", picks.Recommended)
	}
	if len(picks.Popular) != 0 || len(picks.HighlyRated) != 1 {
		t.Errorf("popular %d, highly rated %d", len(picks.Popular), len(picks.HighlyRated))
	}
}
