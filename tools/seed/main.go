package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	inventory "fleetdesk/internal/inventory/domain"
	inventorypostgres "fleetdesk/internal/inventory/infrastructure/postgres"
)

type config struct {
	dsn     string
	count   int
	seed    int64
	maxAge  int
	cleanup bool
}

var departments = []string{"Finance", "Human Resources", "IT", "Marketing", "Operations", "Sales"}

type deviceTemplate struct {
	deviceType inventory.DeviceType
	model      string
	os         string
	ram        string
	processor  string
	storage    string
	graphics   string
}

var templates = []deviceTemplate{
	{inventory.DeviceTypeLaptop, "ThinkPad X1 Carbon", "Windows 11", "16GB", "Intel Core i7-10710U", "512GB SSD", "Intel Iris Xe"},
	{inventory.DeviceTypeLaptop, "MacBook Air M2", "macOS Sonoma", "8GB", "Apple M2", "256GB SSD", "Apple 8-core GPU"},
	{inventory.DeviceTypeLaptop, "Dell Latitude 5420", "Windows 10", "8GB", "Intel Core i5-10210U", "256GB SSD", "Intel UHD"},
	{inventory.DeviceTypeLaptop, "IdeaPad 3", "Windows 10", "4GB", "Intel Core i3-7020U", "128GB SSD", "Intel HD 620"},
	{inventory.DeviceTypeDesktop, "OptiPlex 7080", "Windows 10", "16GB", "Intel Core i7-10700", "1TB HDD", "NVIDIA GT 730"},
	{inventory.DeviceTypeDesktop, "ThinkCentre M720", "Windows 10", "8GB", "Intel Core i5-8400", "512GB SSD", "Intel UHD 630"},
	{inventory.DeviceTypeTablet, "iPad Pro 11", "iPadOS 17", "8GB", "Apple M2", "128GB", "Apple GPU"},
	{inventory.DeviceTypeTablet, "Galaxy Tab S8", "Android 13", "8GB", "Snapdragon 8 Gen 1", "128GB", "Adreno 730"},
	{inventory.DeviceTypePhone, "iPhone 13", "iOS 17", "4GB", "Apple A15", "128GB", "Apple GPU"},
	{inventory.DeviceTypePhone, "Galaxy S22", "Android 13", "8GB", "Snapdragon 8 Gen 1", "256GB", "Adreno 730"},
}

var statuses = []inventory.Status{
	inventory.StatusWorking,
	inventory.StatusWorking,
	inventory.StatusWorking,
	inventory.StatusWorking,
	inventory.StatusNeedsRepair,
	inventory.StatusBroken,
}

func main() {
	cfg := parseConfig()
	if cfg.dsn == "" {
		log.Fatal("PG_DSN or DATABASE_URL is required")
	}
	if cfg.count <= 0 {
		log.Fatal("count must be > 0")
	}

	db, err := sql.Open("pgx", cfg.dsn)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("db ping error: %v", err)
	}

	ctx := context.Background()
	if cfg.cleanup {
		if _, err := db.ExecContext(ctx, "DELETE FROM devices"); err != nil {
			log.Fatalf("cleanup error: %v", err)
		}
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	repo := inventorypostgres.NewDeviceRepository(db)
	now := time.Now().UTC()

	for i := 0; i < cfg.count; i++ {
		tpl := templates[rng.Intn(len(templates))]
		device := inventory.Device{
			ID:              uuid.NewString(),
			Department:      departments[rng.Intn(len(departments))],
			DeviceType:      tpl.deviceType,
			DeviceModel:     tpl.model,
			OperatingSystem: tpl.os,
			Status:          statuses[rng.Intn(len(statuses))],
			RAM:             tpl.ram,
			Processor:       tpl.processor,
			Storage:         tpl.storage,
			Graphics:        tpl.graphics,
		}
		if err := repo.Save(ctx, &device); err != nil {
			log.Fatalf("save device error: %v", err)
		}

		// Spread purchase years so the age bands all get population.
		age := rng.Intn(cfg.maxAge + 1)
		createdAt := now.AddDate(-age, 0, 0)
		if _, err := db.ExecContext(ctx,
			"UPDATE devices SET created_at = $1 WHERE id = $2", createdAt, device.ID); err != nil {
			log.Fatalf("backdate device error: %v", err)
		}
	}

	fmt.Printf("seeded %d devices\n", cfg.count)
}

func parseConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.dsn, "dsn", envDefault("PG_DSN", os.Getenv("DATABASE_URL")), "postgres dsn")
	flag.IntVar(&cfg.count, "count", 50, "number of devices to seed")
	flag.Int64Var(&cfg.seed, "seed", 42, "rng seed")
	flag.IntVar(&cfg.maxAge, "max-age", 12, "maximum device age in years")
	flag.BoolVar(&cfg.cleanup, "cleanup", false, "delete existing devices first")
	flag.Parse()
	return cfg
}

func envDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
