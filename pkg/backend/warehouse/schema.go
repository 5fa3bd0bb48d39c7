package warehouse

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS features (
		kind        TEXT    NOT NULL,
		id          INTEGER NOT NULL,
		name        TEXT,
		name_folded TEXT,
		tags        TEXT    NOT NULL,
		lat         REAL,
		lon         REAL,
		min_lon     REAL,
		min_lat     REAL,
		max_lon     REAL,
		max_lat     REAL,
		geometry    BLOB,
		updated     TEXT,
		PRIMARY KEY (kind, id)
	)`,
	`CREATE INDEX IF NOT EXISTS features_kind_name ON features (kind, name_folded)`,
	`CREATE INDEX IF NOT EXISTS features_kind_bounds ON features (kind, min_lon, max_lon, min_lat, max_lat)`,
}

const featureColumns = "kind, id, tags, lat, lon, geometry, updated"

const upsertFeature = `INSERT INTO features
	(kind, id, name, name_folded, tags, lat, lon, min_lon, min_lat, max_lon, max_lat, geometry, updated)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (kind, id) DO UPDATE SET
		name = excluded.name,
		name_folded = excluded.name_folded,
		tags = excluded.tags,
		lat = excluded.lat,
		lon = excluded.lon,
		min_lon = excluded.min_lon,
		min_lat = excluded.min_lat,
		max_lon = excluded.max_lon,
		max_lat = excluded.max_lat,
		geometry = excluded.geometry,
		updated = excluded.updated`

func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying warehouse migration %d: %w", i, err)
		}
	}
	return nil
}
