package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	commentdomain "github.com/smallbiznis/sellapp/internal/comment/domain"
	identitydomain "github.com/smallbiznis/sellapp/internal/identity/domain"
	newsdomain "github.com/smallbiznis/sellapp/internal/news/domain"
	promotiondomain "github.com/smallbiznis/sellapp/internal/promotion/domain"
	"gorm.io/gorm"
)

// RunMigrations applies the embedded SQL migrations so the catalog
// schema is usable out of the box for local and self-hosted setups.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the same schema through gorm for the non-postgres
// dialects, mainly sqlite in development and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identitydomain.Role{},
		&identitydomain.User{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&catalogdomain.ProductImage{},
		&newsdomain.News{},
		&promotiondomain.Promotion{},
		&promotiondomain.PromotionProduct{},
		&commentdomain.Comment{},
	)
}
