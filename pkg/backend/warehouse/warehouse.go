// Package warehouse stores osm features in a SQLite database and answers lookups and searches with SQL.
package warehouse

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/paulmach/orb/encoding/wkb"
	"go.uber.org/zap"
)

type Warehouse struct {
	db  *sql.DB
	log *zap.Logger
}

func Open(path string, log *zap.Logger) (*Warehouse, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening warehouse %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Warehouse{db: db, log: log}, nil
}

func (w *Warehouse) Close() error {
	return w.db.Close()
}

func (w *Warehouse) Name() string {
	return "warehouse"
}

func (w *Warehouse) Lookup(ctx context.Context, kind datastructure.Kind, id int64) (datastructure.RawFeature, error) {
	row := w.db.QueryRowContext(ctx, "SELECT "+featureColumns+" FROM features WHERE kind = ? AND id = ?", string(kind), id)
	f, err := scanFeature(row)
	if errors.Is(err, sql.ErrNoRows) {
		return datastructure.RawFeature{}, datastructure.ErrFeatureNotFound
	}
	if err != nil {
		return datastructure.RawFeature{}, fmt.Errorf("warehouse lookup %s/%d: %w", kind, id, err)
	}
	return f, nil
}

func (w *Warehouse) Query(ctx context.Context, criteria datastructure.SearchCriteria) ([]datastructure.RawFeature, error) {
	if criteria.Limit <= 0 {
		return []datastructure.RawFeature{}, nil
	}

	query, args := buildSearchQuery(criteria)
	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("warehouse query: %w", err)
	}
	defer rows.Close()

	features := make([]datastructure.RawFeature, 0)
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, fmt.Errorf("warehouse scan: %w", err)
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("warehouse rows: %w", err)
	}
	return features, nil
}

// SaveFeatures upserts a batch of features in one transaction.
func (w *Warehouse) SaveFeatures(ctx context.Context, features []datastructure.RawFeature) error {
	if len(features) == 0 {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertFeature)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, f := range features {
		args, err := featureArgs(f)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("upserting %s/%d: %w", f.Kind, f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	w.log.Debug("saved features to warehouse", zap.Int("count", len(features)))
	return nil
}

func featureArgs(f datastructure.RawFeature) ([]any, error) {
	tags, err := json.Marshal(f.Tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags of %s/%d: %w", f.Kind, f.ID, err)
	}

	var name, folded any
	if n := f.Name(); n != "" {
		name, folded = n, datastructure.FoldName(n)
	}

	var lat, lon any
	if f.Position != nil {
		lat, lon = f.Position.Lat, f.Position.Lon
	}

	var minLon, minLat, maxLon, maxLat any
	if b, ok := f.Bound(); ok {
		minLon, minLat, maxLon, maxLat = b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()
	}

	var geometry any
	if f.Geometry != nil {
		geometry, err = wkb.Marshal(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("encoding geometry of %s/%d: %w", f.Kind, f.ID, err)
		}
	}

	var updated any
	if f.Updated != nil {
		updated = f.Updated.UTC().Format(time.RFC3339)
	}

	return []any{string(f.Kind), f.ID, name, folded, string(tags), lat, lon,
		minLon, minLat, maxLon, maxLat, geometry, updated}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFeature(s scanner) (datastructure.RawFeature, error) {
	var (
		kind     string
		id       int64
		tagsJSON string
		lat, lon sql.NullFloat64
		geometry []byte
		updated  sql.NullString
	)
	if err := s.Scan(&kind, &id, &tagsJSON, &lat, &lon, &geometry, &updated); err != nil {
		return datastructure.RawFeature{}, err
	}

	k, err := datastructure.ParseKind(kind)
	if err != nil {
		return datastructure.RawFeature{}, err
	}

	tags := map[string]string{}
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return datastructure.RawFeature{}, fmt.Errorf("decoding tags of %s/%d: %w", kind, id, err)
	}

	f := datastructure.NewRawFeature(k, id, tags)
	if lat.Valid && lon.Valid {
		f.Position = &datastructure.Position{Lat: lat.Float64, Lon: lon.Float64}
	}
	if len(geometry) > 0 {
		g, err := wkb.Unmarshal(geometry)
		if err != nil {
			return datastructure.RawFeature{}, fmt.Errorf("decoding geometry of %s/%d: %w", kind, id, err)
		}
		f.Geometry = g
	}
	if updated.Valid {
		if ts, err := time.Parse(time.RFC3339, updated.String); err == nil {
			f.Updated = &ts
		}
	}
	return f, nil
}
