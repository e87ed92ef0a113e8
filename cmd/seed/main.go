package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"recipebook/internal/database"
	"recipebook/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "recipebook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM cart_items")
	db.Exec("DELETE FROM shopping_carts")
	db.Exec("DELETE FROM favorite_items")
	db.Exec("DELETE FROM favorite_sets")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM recipe_ingredients")
	db.Exec("DELETE FROM recipe_tags")
	db.Exec("DELETE FROM recipes")
	db.Exec("DELETE FROM ingredients")
	db.Exec("DELETE FROM tags")
	db.Exec("DELETE FROM users")

	// ================== TAGS ==================
	log.Println("Creating tags...")
	tags := []domain.Tag{
		{Name: "Breakfast", Slug: "breakfast"},
		{Name: "Lunch", Slug: "lunch"},
		{Name: "Dinner", Slug: "dinner"},
		{Name: "Dessert", Slug: "dessert"},
		{Name: "Vegan", Slug: "vegan"},
	}
	for i := range tags {
		db.Create(&tags[i])
	}

	// ================== INGREDIENTS ==================
	log.Println("Creating ingredients...")
	ingredients := []domain.Ingredient{
		{Name: "egg", MeasurementUnit: "pcs"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "butter", MeasurementUnit: "g"},
		{Name: "tomato", MeasurementUnit: "pcs"},
		{Name: "onion", MeasurementUnit: "pcs"},
		{Name: "chicken breast", MeasurementUnit: "g"},
		{Name: "olive oil", MeasurementUnit: "ml"},
		{Name: "rice", MeasurementUnit: "g"},
		{Name: "potato", MeasurementUnit: "pcs"},
	}
	for i := range ingredients {
		db.Create(&ingredients[i])
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	seedUsers := []struct {
		username, email, first, last string
	}{
		{"alice", "alice@example.com", "Alice", "Baker"},
		{"bob", "bob@example.com", "Bob", "Cook"},
		{"carol", "carol@example.com", "Carol", "Chef"},
	}
	created := make([]domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		u := domain.User{
			Username:     su.username,
			Email:        su.email,
			PasswordHash: string(hash),
			FirstName:    su.first,
			LastName:     su.last,
		}
		db.Create(&u)
		created = append(created, u)
	}

	// ================== RECIPES ==================
	log.Println("Creating recipes...")
	type seedRecipe struct {
		name, text  string
		cookingTime int
		author      int
		tagIdx      []int
		items       map[int]int // ingredient index -> amount
	}
	seeds := []seedRecipe{
		{
			name: "Pancakes", text: "Mix, fry, serve with butter.",
			cookingTime: 20, author: 0, tagIdx: []int{0, 3},
			items: map[int]int{0: 2, 1: 300, 2: 200, 3: 30, 5: 20},
		},
		{
			name: "Chicken and rice", text: "Sear the chicken, simmer with rice.",
			cookingTime: 45, author: 1, tagIdx: []int{1, 2},
			items: map[int]int{8: 400, 10: 250, 7: 1, 9: 30, 4: 5},
		},
		{
			name: "Tomato salad", text: "Chop everything, dress with oil.",
			cookingTime: 10, author: 2, tagIdx: []int{1, 4},
			items: map[int]int{6: 3, 7: 1, 9: 20, 4: 3},
		},
	}
	for i, sr := range seeds {
		rec := domain.Recipe{
			AuthorID:    created[sr.author].ID,
			Name:        sr.name,
			Image:       fmt.Sprintf("/static/uploads/seed-%d.jpg", i+1),
			Text:        sr.text,
			CookingTime: sr.cookingTime,
		}
		db.Create(&rec)

		for idx, amount := range sr.items {
			db.Create(&domain.RecipeIngredient{
				RecipeID:     rec.ID,
				IngredientID: ingredients[idx].ID,
				Amount:       amount,
			})
		}
		for _, ti := range sr.tagIdx {
			db.Exec("INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)", rec.ID, tags[ti].ID)
		}
	}

	// ================== SUBSCRIPTIONS ==================
	log.Println("Creating subscriptions...")
	db.Create(&domain.Subscription{SubscriberID: created[0].ID, AuthorID: created[1].ID})
	db.Create(&domain.Subscription{SubscriberID: created[1].ID, AuthorID: created[2].ID})

	log.Println("Seed completed!")
	log.Println("Test accounts: alice/bob/carol @example.com / password123")
}
