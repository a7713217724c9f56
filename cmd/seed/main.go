// Command main runs the store seeder for Quill.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"quill/internal/config"
	"quill/internal/repository"
	"quill/internal/seed"
	"quill/internal/store"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numArticles := flag.Int("articles", 80, "Number of articles to create")
	flag.Parse()

	log.Println("Store Seeder")
	log.Printf("Target: %d users, %d articles\n", *numUsers, *numArticles)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	st, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer st.Close(context.Background())

	s := seed.NewSeeder(
		repository.NewUserRepository(st),
		repository.NewArticleRepository(st),
		repository.NewCommentRepository(st),
		repository.NewTagRepository(st),
	)
	if err := s.Run(context.Background(), *numUsers, *numArticles); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
