package migrations

import (
	"fmt"
	"log/slog"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_schema/internal/models"
)

const (
	InitialSchema   = "202409010000_initial_schema"
	ProductsAddTest = "202409120000_products_add_test"
	ProductsDrop    = "202409121313_products_drop_test"
)

// productTestFlag describes the short-lived products.test column.
type productTestFlag struct {
	Test *bool
}

func (productTestFlag) TableName() string { return "products" }

func addTestColumn(tx *gorm.DB) error {
	if tx.Migrator().HasColumn(&productTestFlag{}, "test") {
		return nil
	}
	return tx.Migrator().AddColumn(&productTestFlag{}, "Test")
}

// dropTestColumn alters products in place. The sqlite migrator's DropColumn
// rebuilds the table from its CREATE TABLE text, which loses the separately
// created unique indexes and trips foreign keys from the item tables.
func dropTestColumn(tx *gorm.DB) error {
	if !tx.Migrator().HasColumn(&productTestFlag{}, "test") {
		return nil
	}
	return tx.Exec("ALTER TABLE products DROP COLUMN test").Error
}

func steps() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: InitialSchema,
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(models.All()...)
			},
			Rollback: func(tx *gorm.DB) error {
				all := models.All()
				for i := len(all) - 1; i >= 0; i-- {
					if err := tx.Migrator().DropTable(all[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID:       ProductsAddTest,
			Migrate:  addTestColumn,
			Rollback: dropTestColumn,
		},
		{
			ID:       ProductsDrop,
			Migrate:  dropTestColumn,
			Rollback: addTestColumn,
		},
	}
}

func newMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	return gormigrate.New(db, gormigrate.DefaultOptions, steps())
}

// Migrate applies every pending step.
func Migrate(db *gorm.DB) error {
	if err := newMigrator(db).Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	slog.Info("database migration completed")
	return nil
}

func MigrateTo(db *gorm.DB, id string) error {
	if err := newMigrator(db).MigrateTo(id); err != nil {
		return fmt.Errorf("migrate to %s: %w", id, err)
	}
	slog.Info("database migrated", "to", id)
	return nil
}

func RollbackLast(db *gorm.DB) error {
	if err := newMigrator(db).RollbackLast(); err != nil {
		return fmt.Errorf("rollback last: %w", err)
	}
	slog.Info("database rolled back one step")
	return nil
}

func RollbackTo(db *gorm.DB, id string) error {
	if err := newMigrator(db).RollbackTo(id); err != nil {
		return fmt.Errorf("rollback to %s: %w", id, err)
	}
	slog.Info("database rolled back", "to", id)
	return nil
}

// IDs lists the known steps in apply order.
func IDs() []string {
	s := steps()
	out := make([]string, 0, len(s))
	for _, m := range s {
		out = append(out, m.ID)
	}
	return out
}
