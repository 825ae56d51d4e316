package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createProgrammingTables creates the per-cinema allocation table and its
// comment log.
func createProgrammingTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "004_create_programming",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS selection_film_programming (
					id BIGSERIAL PRIMARY KEY,
					selection_id BIGINT NOT NULL REFERENCES selections(id),
					film_id BIGINT NOT NULL REFERENCES films(id),
					cinema_id BIGINT NOT NULL REFERENCES cinemas(id),
					suggested INTEGER NOT NULL DEFAULT 0,
					cap_label VARCHAR(100),
					notes TEXT,
					cycle_id BIGINT,

					-- Unique constraint for upsert
					CONSTRAINT uq_programming_triple UNIQUE (selection_id, film_id, cinema_id)
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS programming_comments (
					id BIGSERIAL PRIMARY KEY,
					selection_id BIGINT NOT NULL REFERENCES selections(id),
					film_id BIGINT NOT NULL REFERENCES films(id),
					cinema_id BIGINT,
					user_id VARCHAR(64) NOT NULL,
					body TEXT NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			return tx.Exec(
				"CREATE INDEX IF NOT EXISTS idx_programming_comments_pair ON programming_comments(selection_id, film_id);",
			).Error
		},
		Rollback: func(tx *gorm.DB) error {
			_ = tx.Exec("DROP TABLE IF EXISTS programming_comments;").Error
			return tx.Exec("DROP TABLE IF EXISTS selection_film_programming;").Error
		},
	}
}
