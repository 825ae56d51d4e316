package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createSelectionsTables creates the selections table and its film pivot.
func createSelectionsTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "003_create_selections",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS selections (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					status VARCHAR(20) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS selection_films (
					id BIGSERIAL PRIMARY KEY,
					selection_id BIGINT NOT NULL REFERENCES selections(id),
					film_id BIGINT NOT NULL REFERENCES films(id),
					selected BOOLEAN DEFAULT FALSE,

					-- Frozen at approval, never recomputed afterwards
					score INTEGER DEFAULT 0,
					category VARCHAR(50),
					comment TEXT,

					CONSTRAINT uq_selection_film UNIQUE (selection_id, film_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_selections_status ON selections(status);",
				"CREATE INDEX IF NOT EXISTS idx_selection_films_score ON selection_films(score DESC);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			_ = tx.Exec("DROP TABLE IF EXISTS selection_films;").Error
			return tx.Exec("DROP TABLE IF EXISTS selections;").Error
		},
	}
}
