// Command seed creates the administrator account and, optionally, a set of
// sample content records. The admin user is only ever created out-of-band;
// the server has no registration surface.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"chambers/config"
	"chambers/database"
	contentRepo "chambers/database/repository/content"
	userRepo "chambers/database/repository/user"
	"chambers/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", "admin", "administrator login name")
	password := flag.String("password", "", "administrator password (required)")
	samples := flag.Bool("samples", false, "also insert sample content")
	flag.Parse()

	if *password == "" {
		log.Fatal("seed: -password is required")
	}

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("seed: invalid configuration: %v", err)
	}

	client, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	db := client.Database(config.AppConfig.DatabaseName)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	users := userRepo.NewMongoUserRepo(db)
	if existing, err := users.GetByUsername(ctx, *username); err == nil && existing != nil {
		log.Fatalf("seed: user %q already exists", *username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: failed to hash password: %v", err)
	}
	if err := users.Create(ctx, &models.User{
		Username:     *username,
		PasswordHash: string(hash),
	}); err != nil {
		log.Fatalf("seed: failed to create user: %v", err)
	}
	log.Printf("seed: created administrator %q", *username)

	if *samples {
		seedSamples(ctx, contentRepo.NewMongoFactory(db))
	}
}

func seedSamples(ctx context.Context, repos contentRepo.Factory) {
	practiceAreas := []contentRepo.Document{
		{
			"title":       "Corporate Law",
			"description": "Expert legal advice for businesses and corporate entities.",
		},
		{
			"title":       "Family Law",
			"description": "Comprehensive legal support for family-related matters including divorce and custody.",
		},
	}
	for _, doc := range practiceAreas {
		if _, err := repos("practice_areas").Create(ctx, doc); err != nil {
			log.Fatalf("seed: failed to insert practice area: %v", err)
		}
	}

	team := []contentRepo.Document{
		{
			"name":           "John Doe",
			"position":       "Senior Attorney",
			"qualifications": "LLB, University of Pretoria",
			"bio":            "John has over 15 years of experience in corporate law.",
			"email":          "john.doe@example.com",
			"contact_number": "+27 31 000 0000",
		},
	}
	for _, doc := range team {
		if _, err := repos("team").Create(ctx, doc); err != nil {
			log.Fatalf("seed: failed to insert team member: %v", err)
		}
	}

	notices := []contentRepo.Document{
		{
			"title":   "New offices",
			"content": "We have moved to new offices in the city centre.",
			"date":    time.Now().Format("2006-01-02"),
		},
	}
	for _, doc := range notices {
		if _, err := repos("notices").Create(ctx, doc); err != nil {
			log.Fatalf("seed: failed to insert notice: %v", err)
		}
	}

	log.Println("seed: sample content inserted")
}
