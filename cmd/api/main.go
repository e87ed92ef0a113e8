package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"recipebook/internal/database"
	"recipebook/internal/middleware"
	"recipebook/internal/modules/catalog"
	"recipebook/internal/modules/recipes"
	"recipebook/internal/modules/subscriptions"
	"recipebook/internal/modules/users"
	"recipebook/internal/pkg/images"
	jwtsvc "recipebook/internal/pkg/jwt"
	"recipebook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "recipebook.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewCartRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	imageStore := images.NewStore(uploadsDir, images.StaticURLBase)

	userService := users.NewService(userRepo, subscriptionRepo, imageStore)
	userHandler := users.NewHandler(userService, j)

	catalogService := catalog.NewService(tagRepo, ingredientRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	recipeService := recipes.NewService(
		recipeRepo,
		tagRepo,
		ingredientRepo,
		favoriteRepo,
		cartRepo,
		subscriptionRepo,
		imageStore,
	)
	recipeHandler := recipes.NewHandler(recipeService)

	subscriptionService := subscriptions.NewService(subscriptionRepo, userRepo, recipeRepo)
	subscriptionHandler := subscriptions.NewHandler(subscriptionService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static(images.StaticURLBase, uploadsDir)

	api := r.Group("/api")
	{
		// public reads still see the principal when a token is sent,
		// so per-user flags come out right
		public := api.Group("/")
		public.Use(middleware.OptionalAuth(j))

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth(j))

		userHandler.RegisterRoutes(public, protected)
		catalogHandler.RegisterRoutes(public)
		recipeHandler.RegisterRoutes(public, protected)
		subscriptionHandler.RegisterRoutes(protected)
	}

	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
