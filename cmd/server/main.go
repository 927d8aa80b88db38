package main

import (
	"log"
	"os"

	"debtledger-backend/handlers"
	"debtledger-backend/repository"
	"debtledger-backend/service"
	"debtledger-backend/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	// Initialize attachment storage
	fileStorage, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	// Initialize the flat-file record store
	debtsFile := os.Getenv("DEBTS_FILE")
	if debtsFile == "" {
		debtsFile = "./data/debts.json"
	}
	debtRepo, err := repository.NewDebtRepository(debtsFile, log.Default())
	if err != nil {
		log.Fatalf("Failed to initialize debt store: %v", err)
	}
	log.Printf("Debt store ready at %s", debtsFile)

	// Initialize services
	debtService := service.NewDebtService(
		service.WithDebtRepository(debtRepo),
		service.WithStorage(fileStorage),
	)

	// Initialize handlers
	debtHandler := handlers.NewDebtHandler(debtService, fileStorage)

	// Setup Gin router
	r := gin.Default()
	r.Use(cors.Default())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/debts", debtHandler.ListDebts)
		api.POST("/debts", debtHandler.CreateDebt)
		api.DELETE("/debts/:id", debtHandler.DeleteDebt)
	}

	// Serve stored attachments
	r.GET("/uploads/:filename", debtHandler.DownloadAttachment)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
