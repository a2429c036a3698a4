package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "vendor-storage/internal/adapters/web"
	"vendor-storage/internal/app"
	"vendor-storage/internal/core"
	"vendor-storage/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	vendorService := core.NewVendorService(pool)
	categoryService := core.NewCategoryService(pool)

	svc := app.NewAppService(vendorService, categoryService)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
