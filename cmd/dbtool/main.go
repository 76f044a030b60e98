package main

import (
	"context"
	"database/sql"
	"eld-trip-planner/internal/adapters/repositories"
	"eld-trip-planner/internal/config"
	"eld-trip-planner/internal/platform/db"
	"log"
	"time"
)

// dbtool prepares the city directory: schema plus seed data.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	driver := cfg.CityDBDriver
	if driver == "" {
		driver = db.DriverSQLite
	}

	cityDB, err := db.Open(driver, cfg.CityDBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer cityDB.Close()

	seedPath := cfg.CitySeedPath
	if seedPath == "" {
		seedPath = "data/seeds/cities.json"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := initAndSeed(ctx, cityDB, driver, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, cityDB *sql.DB, driver, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, cityDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	dialect, err := repositories.DialectFor(driver)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("Seeding database...")
	n, err := repositories.SeedCitiesFromJSON(ctx, cityDB, dialect, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete: cities=%d", n)

	return nil
}
