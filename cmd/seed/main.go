// Command seed loads the starter catalog and ensures an admin account exists.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/config"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

var starterCatalog = []models.Product{
	{
		Name:        "SafeTyres Anti-Puncture Liquid (200ml)",
		Description: "Compact protection for bikes and scooters. Seals punctures instantly.",
		Size:        "200ml",
		Price:       decimal.NewFromInt(300),
		Image:       "/assets/img1.jpeg",
		Stock:       150,
		Features:    []string{"Ideal for two-wheelers", "Eco-friendly formula", "Easy application"},
	},
	{
		Name:        "SafeTyres Anti-Puncture Liquid (300ml)",
		Description: "Perfect for motorcycles and small cars. Reliable puncture protection.",
		Size:        "300ml",
		Price:       decimal.NewFromInt(450),
		Image:       "/assets/img1.jpeg",
		Stock:       120,
		Popular:     true,
		Features:    []string{"Motorcycle specialized", "Instant sealing", "Coolant properties"},
	},
	{
		Name:        "SafeTyres Anti-Puncture Liquid (500ml)",
		Description: "Standard pack for cars and SUVs. Ensures a puncture-free journey.",
		Size:        "500ml",
		Price:       decimal.NewFromInt(750),
		Image:       "/assets/img2.jpeg",
		Stock:       100,
		Popular:     true,
		Features:    []string{"Car & SUV formula", "Prevents air loss", "Extends tire life"},
	},
	{
		Name:        "SafeTyres Anti-Puncture Liquid (1L)",
		Description: "Heavy-duty protection for commercial vehicles and trucks.",
		Size:        "1L",
		Price:       decimal.NewFromInt(1500),
		Image:       "/assets/img2.jpeg",
		Stock:       50,
		Popular:     true,
		Features:    []string{"Heavy-duty use", "Works on large tubeless tires", "Maximum protection"},
	},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	ctx := logging.IntoContext(context.Background(), log)

	if err := run(ctx, cfg); err != nil {
		log.Error("seed_failed", "error", err)
		os.Exit(1)
	}
	log.Info("seed_complete")
}

func run(ctx context.Context, cfg config.Config) error {
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pkgdb.Close(db)

	if err := repo.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	store := &repo.GormRepo{DB: db}

	if err := seedProducts(ctx, store); err != nil {
		return err
	}
	return seedAdmin(ctx, store, hash.Secret{}, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

// seedProducts inserts the starter catalog into an empty products table only.
func seedProducts(ctx context.Context, store *repo.GormRepo) error {
	l := logging.FromContext(ctx)

	total, _, err := store.ListProducts(ctx, repo.ProductFilter{}, 0, 1)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if total > 0 {
		l.Info("seed_products_skipped", "existing", total)
		return nil
	}

	for i := range starterCatalog {
		p := starterCatalog[i]
		if err := store.CreateProduct(ctx, &p); err != nil {
			return fmt.Errorf("create product %q: %w", p.Name, err)
		}
	}
	l.Info("seed_products_created", "count", len(starterCatalog))
	return nil
}

// seedAdmin creates a verified admin, or promotes and resets the password of
// an existing account with the same email.
func seedAdmin(ctx context.Context, store *repo.GormRepo, hasher hash.Secret, email, password string) error {
	l := logging.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		l.Info("seed_admin_skipped", "reason", "SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set")
		return nil
	}

	pwHash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user, err := store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			Name:         "Admin User",
			Email:        email,
			PasswordHash: pwHash,
			Role:         models.RoleAdmin,
			IsVerified:   true,
		}
		if err := store.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		l.Info("seed_admin_created", slog.String("email", email))
		return nil
	case err != nil:
		return fmt.Errorf("find admin: %w", err)
	}

	user.PasswordHash = pwHash
	user.Role = models.RoleAdmin
	user.IsVerified = true
	if err := store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	l.Info("seed_admin_updated", slog.String("email", email))
	return nil
}
