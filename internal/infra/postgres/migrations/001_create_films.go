package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createFilmsTable creates the films table, the venues table and the
// generic list tables.
func createFilmsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_films",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS films (
					id BIGSERIAL PRIMARY KEY,
					tmdb_id BIGINT NOT NULL DEFAULT 0,
					title VARCHAR(500) NOT NULL,
					synopsis TEXT,
					genre VARCHAR(255),
					duration INTEGER DEFAULT 0,
					origin VARCHAR(10),
					country VARCHAR(100),
					director VARCHAR(255),
					actors TEXT[],
					tags TEXT[],
					poster_url VARCHAR(500),
					trailer_url VARCHAR(500),
					category VARCHAR(50),
					rating INTEGER DEFAULT 0,
					release_date TIMESTAMP,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				// tmdb_id = 0 marks a film created by hand, outside the
				// TMDB import path. Uniqueness only holds for imports.
				"CREATE UNIQUE INDEX IF NOT EXISTS idx_films_tmdb_id ON films(tmdb_id) WHERE tmdb_id <> 0;",
				"CREATE INDEX IF NOT EXISTS idx_films_category ON films(category);",
				"CREATE INDEX IF NOT EXISTS idx_films_release_date ON films(release_date DESC);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS cinemas (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					slug VARCHAR(255) UNIQUE
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS lists (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					slug VARCHAR(255) UNIQUE,
					type VARCHAR(20) NOT NULL,
					kind VARCHAR(50),
					description TEXT,
					cover_url VARCHAR(500),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS list_films (
					id BIGSERIAL PRIMARY KEY,
					list_id BIGINT NOT NULL REFERENCES lists(id),
					film_id BIGINT NOT NULL REFERENCES films(id),
					rank INTEGER DEFAULT 0,

					CONSTRAINT uq_list_film UNIQUE (list_id, film_id)
				);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			_ = tx.Exec("DROP TABLE IF EXISTS list_films;").Error
			_ = tx.Exec("DROP TABLE IF EXISTS lists;").Error
			_ = tx.Exec("DROP TABLE IF EXISTS cinemas;").Error
			return tx.Exec("DROP TABLE IF EXISTS films;").Error
		},
	}
}
