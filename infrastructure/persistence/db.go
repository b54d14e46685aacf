// Package persistence provides database storage implementations.
package persistence

import (
	"fmt"

	"github.com/helixml/subway/internal/database"
)

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(
		&StationModel{},
		&LineModel{},
		&SegmentModel{},
	); err != nil {
		return err
	}
	return postMigrate(db)
}

// postMigrate adds the cascading line foreign key on PostgreSQL. SQLite
// relies on LineStore.Delete removing segments explicitly.
func postMigrate(db database.Database) error {
	if !db.IsPostgres() {
		return nil
	}

	constraints := []struct {
		table      string
		name       string
		definition string
	}{
		{
			table:      "sections",
			name:       "fk_sections_line_id",
			definition: "FOREIGN KEY (line_id) REFERENCES lines(id) ON DELETE CASCADE",
		},
	}

	gdb := db.GORM()
	for _, c := range constraints {
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`, c.table, c.name,
		)).Error; err != nil {
			return fmt.Errorf("drop constraint %s.%s: %w", c.table, c.name, err)
		}
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s ADD CONSTRAINT %s %s`, c.table, c.name, c.definition,
		)).Error; err != nil {
			return fmt.Errorf("create constraint %s.%s: %w", c.table, c.name, err)
		}
	}
	return nil
}
