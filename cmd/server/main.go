package main

import (
	"context"
	"log"
	"os"

	"service-market-api/config"
	"service-market-api/internal/admin"
	"service-market-api/internal/builder"
	"service-market-api/internal/formurl"
	"service-market-api/internal/listing"
	"service-market-api/internal/logs"
	"service-market-api/internal/photos"
	"service-market-api/internal/schema"
	"service-market-api/internal/support"
	"service-market-api/internal/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=disable"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&users.User{},
		&users.BannedUser{},
		&schema.ServiceType{},
		&listing.Service{},
		&support.Question{},
		&logs.SystemLog{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	logService := &logs.LogService{DB: db}
	logs.RegisterRoutes(r, logService)

	userService := &users.UserService{DB: db, Cfg: cfg}
	users.RegisterRoutes(r, &users.UserController{Users: userService})

	registryService := &schema.RegistryService{DB: db}
	schema.RegisterRoutes(r, registryService)

	builderService := &builder.BuilderService{
		Registry: registryService,
		Sessions: builder.NewSessionStore(builder.DefaultSessionTTL),
	}
	builder.RegisterRoutes(r, builderService, logService)

	photoService := &photos.PhotoService{Bucket: cfg.PhotoBucket}

	listingController := &listing.ListingController{
		Listings: &listing.ListingService{DB: db},
		Registry: registryService,
		Codec: formurl.Codec{
			CreateBaseURL: cfg.FormCreateURL,
			EditBaseURL:   cfg.FormEditURL,
		},
		Validator:  listing.Validator{},
		Photos:     photoService,
		LogService: logService,
	}
	listing.RegisterRoutes(r, listingController)

	// Vertex AI client with ADC
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  cfg.GenAIProject,
		Location: cfg.GenAILocation,
	})
	if err != nil {
		log.Fatal("Failed to create genai client:", err)
	}

	supportService := &support.SupportService{DB: db, Client: client, FAQ: cfg.SupportFAQ}
	support.RegisterRoutes(r, &support.SupportController{Support: supportService})

	adminService := &admin.AdminService{DB: db, Registry: registryService}
	admin.RegisterRoutes(r, &admin.AdminController{Admin: adminService})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on 0.0.0.0:%s ...", port)
	log.Fatal(r.Run("0.0.0.0:" + port))
}
