package main

import (
	"fmt"
	"log"
	"os"

	"claimflow/claims"
	"claimflow/evidence"
	"claimflow/fraud"
	"claimflow/pkg/ai"
	"claimflow/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

// package-level wiring shared by the handlers
var (
	db       *gorm.DB
	repos    *store.Store
	claimSvc *claims.Service
	engine   *evidence.Engine
	fraudSvc *fraud.Provider
	aiClient *ai.Client
	files    *localFileStore
)

func main() {
	// Load ./.env if present before reading vars; existing env wins.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	// Support a lightweight migrate command: `./claimflow migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()
	wireServices()

	r := gin.Default()
	setupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func wireServices() {
	repos = store.New(db)
	files = newLocalFileStore(uploadBaseDir())

	aiBase := os.Getenv("AI_SERVICE_URL")
	if aiBase == "" {
		aiBase = "http://localhost:8000"
	}
	aiClient = ai.NewClient(aiBase, 0)

	claimSvc = claims.NewService(repos.Claims, repos.Users, repos.ClaimTypes, repos.Audit)
	engine = evidence.NewEngine(repos.Claims, repos.Documents, repos.Requirements,
		repos.ValidationResults, repos.FraudResults, aiClient, files)
	fraudSvc = fraud.NewProvider(aiClient, repos.FraudResults, repos.Documents, files)
}
