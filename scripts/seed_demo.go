package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/khoahotran/linkedin-crm/adapters/persistence"
	"github.com/khoahotran/linkedin-crm/internal/domain/profile"
	"github.com/khoahotran/linkedin-crm/pkg/logger"
)

func main() {
	fmt.Println("seeding demo profile into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := persistence.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("cannot create schema: %v", err)
	}

	repo := persistence.NewPostgresProfileRepo(pool, logger.NewZapLogger("development"))

	demo := &profile.Profile{
		LinkedinURL: "https://www.linkedin.com/in/demo-user/",
		Name:        "Demo User",
		Headline:    "Staff Engineer at Example Corp",
		Location:    "Ho Chi Minh City, Vietnam",
		About:       "Seeded profile for local development.",
		Experience: []profile.Experience{
			{Title: "Staff Engineer", CompanyName: "Example Corp", Duration: "2022 - Present"},
			{Title: "Backend Engineer", CompanyName: "Startup Co", Duration: "2019 - 2022"},
		},
		Education: []profile.Education{
			{SchoolName: "HCMC University of Technology", DegreeName: "BSc Computer Science"},
		},
		Skills: []profile.Skill{
			{Name: "Go"}, {Name: "PostgreSQL"}, {Name: "Kafka"},
		},
	}

	id, err := repo.Save(ctx, demo)
	if err != nil {
		log.Fatalf("cannot seed profile: %v", err)
	}

	fmt.Printf("seeded demo profile '%s' with id %d successfully!\n", demo.LinkedinURL, id)
}
