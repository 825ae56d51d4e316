package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createInterestsTables creates the interests, ratings and activity_log
// tables.
func createInterestsTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_interests",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS interests (
					id BIGSERIAL PRIMARY KEY,
					user_id VARCHAR(64) NOT NULL,
					film_id BIGINT NOT NULL REFERENCES films(id),
					value VARCHAR(20) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Unique constraint for upsert
					CONSTRAINT uq_interest_user_film UNIQUE (user_id, film_id)
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS ratings (
					id BIGSERIAL PRIMARY KEY,
					user_id VARCHAR(64) NOT NULL,
					film_id BIGINT NOT NULL REFERENCES films(id),
					note INTEGER NOT NULL,
					comment TEXT,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					CONSTRAINT uq_rating_user_film UNIQUE (user_id, film_id)
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS activity_log (
					id BIGSERIAL PRIMARY KEY,
					user_id VARCHAR(64) NOT NULL,
					action VARCHAR(100) NOT NULL,
					target_id BIGINT DEFAULT 0,
					context VARCHAR(255),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_interests_film_id ON interests(film_id);",
				"CREATE INDEX IF NOT EXISTS idx_ratings_film_id ON ratings(film_id);",
				"CREATE INDEX IF NOT EXISTS idx_activity_log_user_id ON activity_log(user_id);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			_ = tx.Exec("DROP TABLE IF EXISTS activity_log;").Error
			_ = tx.Exec("DROP TABLE IF EXISTS ratings;").Error
			return tx.Exec("DROP TABLE IF EXISTS interests;").Error
		},
	}
}
