package main

import (
	"context"
	"log"
	"net/http"

	"homechef-marketplace/internal/config"
	appmw "homechef-marketplace/internal/middleware"
	"homechef-marketplace/internal/models"
	"homechef-marketplace/internal/modules/auth"
	"homechef-marketplace/internal/modules/favourites"
	"homechef-marketplace/internal/modules/meals"
	"homechef-marketplace/internal/modules/orders"
	"homechef-marketplace/internal/modules/requests"
	"homechef-marketplace/internal/modules/reviews"
	"homechef-marketplace/internal/modules/stats"
	"homechef-marketplace/internal/modules/uploads"
	"homechef-marketplace/internal/modules/users"
	"homechef-marketplace/pkg/email"
	"homechef-marketplace/pkg/imagehost"
	"homechef-marketplace/pkg/payment"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	mailSender, err := email.NewSESSender(ctx, cfg.EmailSender)
	if err != nil {
		log.Fatalf("failed to set up email sender: %v", err)
	}

	googleOAuth := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	stripeSvc := payment.NewStripeService(cfg.StripeAPIKey, cfg.ClientOrigin)
	imageClient := imagehost.NewClient(cfg.ImageHostAPIKey)

	// Repositories
	userRepo := users.NewRepository(pool)
	mealRepo := meals.NewRepository(pool)
	orderRepo := orders.NewRepository(pool)
	reviewRepo := reviews.NewRepository(pool)
	favouriteRepo := favourites.NewRepository(pool)
	requestRepo := requests.NewRepository(pool)
	statsRepo := stats.NewRepository(pool)

	// Services
	userSvc := users.NewService(userRepo)
	authSvc := auth.NewService(userRepo, cfg.JWTSecret, googleOAuth)
	mealSvc := meals.NewService(mealRepo, userRepo)
	orderSvc := orders.NewService(orderRepo, mealRepo, userRepo, stripeSvc)
	reviewSvc := reviews.NewService(reviewRepo, userRepo)
	favouriteSvc := favourites.NewService(favouriteRepo, mealRepo)
	requestSvc := requests.NewService(requestRepo, userRepo, mailSender)
	statsSvc := stats.NewService(statsRepo)

	// Handlers
	userHandler := users.NewHandler(userSvc)
	authHandler := auth.NewHandler(authSvc)
	mealHandler := meals.NewHandler(mealSvc)
	orderHandler := orders.NewHandler(orderSvc)
	reviewHandler := reviews.NewHandler(reviewSvc)
	favouriteHandler := favourites.NewHandler(favouriteSvc)
	requestHandler := requests.NewHandler(requestSvc)
	statsHandler := stats.NewHandler(statsSvc)
	uploadHandler := uploads.NewHandler(imageClient)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	jwtRequired := appmw.JWTRequired(cfg.JWTSecret)
	userOnly := appmw.RoleRequired(userRepo, models.RoleUser)
	chefOnly := appmw.RoleRequired(userRepo, models.RoleChef)
	adminOnly := appmw.RoleRequired(userRepo, models.RoleAdmin)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/google", authHandler.GoogleLogin)
	e.GET("/auth/google/callback", authHandler.GoogleCallback)
	e.POST("/users", userHandler.Upsert)
	e.GET("/user-role", userHandler.GetRole)
	e.GET("/all-meals", mealHandler.ListAll)
	e.GET("/meal/:id", mealHandler.Get)
	e.GET("/reviews/:foodId", reviewHandler.ListForMeal)
	e.GET("/all-reviews", reviewHandler.ListAll)

	// Authenticated routes
	authed := e.Group("", jwtRequired)
	authed.GET("/users", userHandler.GetByEmail)
	authed.PATCH("/update-profile", authHandler.UpdateProfile)
	authed.POST("/addReview", reviewHandler.Create)
	authed.PATCH("/reviews/:id", reviewHandler.Update)
	authed.DELETE("/reviews/:id", reviewHandler.Delete)
	authed.GET("/favourites", favouriteHandler.List)
	authed.POST("/addFavourite", favouriteHandler.Add)
	authed.DELETE("/removeFavourite", favouriteHandler.Remove)
	authed.POST("/addRequest", requestHandler.Submit)
	authed.PATCH("/payment-success", orderHandler.PaymentSuccess)
	authed.POST("/upload-image", uploadHandler.Upload)

	// Buyer routes
	buyer := e.Group("", jwtRequired, userOnly)
	buyer.POST("/addOrder", orderHandler.Create)
	buyer.GET("/orders", orderHandler.ListMine)
	buyer.POST("/create-checkout-session", orderHandler.CreateCheckout)

	// Chef routes
	chef := e.Group("", jwtRequired, chefOnly)
	chef.POST("/addMeal", mealHandler.Create)
	chef.PATCH("/update-meal/:id", mealHandler.Update)
	chef.DELETE("/delete-meal/:id", mealHandler.Delete)
	chef.GET("/chef-meals", mealHandler.ListMine)
	chef.GET("/pending-orders", orderHandler.ChefOrders)
	chef.PATCH("/update-order-status/:id", orderHandler.UpdateStatus)

	// Admin routes
	admin := e.Group("", jwtRequired, adminOnly)
	admin.GET("/all-users", userHandler.ListAll)
	admin.PATCH("/update-fraud-status/:id", userHandler.UpdateFraudStatus)
	admin.GET("/pending-requests", requestHandler.ListPending)
	admin.PATCH("/approve-request/:id", requestHandler.Approve)
	admin.PATCH("/reject-request/:id", requestHandler.Reject)
	admin.GET("/total-payments", statsHandler.TotalPayments)
	admin.GET("/total-users", statsHandler.TotalUsers)
	admin.GET("/pending-orders-count", statsHandler.PendingOrdersCount)
	admin.GET("/delivered-orders-count", statsHandler.DeliveredOrdersCount)
	admin.GET("/statistics-chart-data", statsHandler.ChartData)

	log.Printf("server listening on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server stopped: %v", err)
	}
}
