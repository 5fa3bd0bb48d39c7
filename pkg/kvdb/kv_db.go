// Package kvdb stores osm features in an embedded bbolt key-value store, one bucket per feature kind.
package kvdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"

	"github.com/klauspost/compress/zstd"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type KVDB struct {
	db *bbolt.DB
	sync.Mutex
	enc *zstd.Encoder
	dec *zstd.Decoder
	log *zap.Logger
}

// record is the stored value of a feature. Geometry is zstd-compressed WKB; Bound is kept uncompressed
// so a scan can filter by bounding box without decoding geometry.
type record struct {
	Tags     map[string]string       `msgpack:"tags"`
	Position *datastructure.Position `msgpack:"position,omitempty"`
	Bound    []float64               `msgpack:"bound,omitempty"`
	Geometry []byte                  `msgpack:"geometry,omitempty"`
	Updated  *time.Time              `msgpack:"updated,omitempty"`
}

func Open(path string, log *zap.Logger) (*KVDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening kv store %s: %w", path, err)
	}
	kv, err := NewKVDB(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func NewKVDB(db *bbolt.DB, log *zap.Logger) (*KVDB, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		for _, kind := range datastructure.Kinds {
			if _, err := tx.CreateBucketIfNotExists([]byte(kind)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating kv buckets: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &KVDB{db: db, enc: enc, dec: dec, log: log}, nil
}

func (db *KVDB) Close() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		return err
	}
	return db.db.Close()
}

func (db *KVDB) Name() string {
	return "kv"
}

// SaveFeatures stores osm features in batches.
func (db *KVDB) SaveFeatures(ctx context.Context, features []datastructure.RawFeature) error {
	if len(features) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	db.Lock()
	defer db.Unlock()
	err := db.db.Batch(func(tx *bbolt.Tx) error {
		for _, f := range features {
			if err := db.Set(f, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	db.log.Debug("saved features to kv store", zap.Int("count", len(features)))
	return nil
}

func (db *KVDB) Set(f datastructure.RawFeature, tx *bbolt.Tx) error {
	value, err := db.encode(f)
	if err != nil {
		return err
	}
	b := tx.Bucket([]byte(f.Kind))
	if b == nil {
		return fmt.Errorf("no bucket for kind %q", f.Kind)
	}
	return b.Put(featureKey(f.ID), value)
}

func (db *KVDB) Lookup(ctx context.Context, kind datastructure.Kind, id int64) (f datastructure.RawFeature, err error) {
	if err := ctx.Err(); err != nil {
		return datastructure.RawFeature{}, err
	}
	err = db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(kind))
		if b == nil {
			return datastructure.ErrFeatureNotFound
		}
		value := b.Get(featureKey(id))
		if value == nil {
			return datastructure.ErrFeatureNotFound
		}
		rec, err := decodeRecord(value)
		if err != nil {
			return err
		}
		f, err = db.feature(kind, id, rec)
		return err
	})
	return
}

// Query scans the kind's bucket in id order and returns the first features that satisfy criteria.
func (db *KVDB) Query(ctx context.Context, criteria datastructure.SearchCriteria) ([]datastructure.RawFeature, error) {
	features := make([]datastructure.RawFeature, 0)
	if criteria.Limit <= 0 {
		return features, nil
	}

	err := db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(criteria.Kind))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		scanned := 0
		for k, v := c.First(); k != nil; k, v = c.Next() {
			scanned++
			if scanned%4096 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}

			rec, err := decodeRecord(v)
			if err != nil {
				return err
			}
			id := int64(binary.BigEndian.Uint64(k))

			candidate := datastructure.NewRawFeature(criteria.Kind, id, rec.Tags)
			candidate.Position = rec.Position
			if len(rec.Bound) == 4 {
				// stands in for the compressed geometry while filtering
				candidate.Geometry = orb.Bound{
					Min: orb.Point{rec.Bound[0], rec.Bound[1]},
					Max: orb.Point{rec.Bound[2], rec.Bound[3]},
				}
			}
			if !criteria.Matches(candidate) {
				continue
			}

			f, err := db.feature(criteria.Kind, id, rec)
			if err != nil {
				return err
			}
			features = append(features, f)
			if len(features) == criteria.Limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return features, nil
}

func (db *KVDB) encode(f datastructure.RawFeature) ([]byte, error) {
	rec := record{
		Tags:     f.Tags,
		Position: f.Position,
		Updated:  f.Updated,
	}
	if f.Geometry != nil {
		raw, err := wkb.Marshal(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("encoding geometry of %s/%d: %w", f.Kind, f.ID, err)
		}
		rec.Geometry = db.enc.EncodeAll(raw, nil)
		if b, ok := f.Bound(); ok {
			rec.Bound = []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
		}
	}
	return msgpack.Marshal(&rec)
}

func decodeRecord(value []byte) (record, error) {
	var rec record
	if err := msgpack.Unmarshal(value, &rec); err != nil {
		return record{}, fmt.Errorf("decoding kv record: %w", err)
	}
	return rec, nil
}

func (db *KVDB) feature(kind datastructure.Kind, id int64, rec record) (datastructure.RawFeature, error) {
	f := datastructure.NewRawFeature(kind, id, rec.Tags)
	f.Position = rec.Position
	f.Updated = rec.Updated
	if len(rec.Geometry) > 0 {
		raw, err := db.dec.DecodeAll(rec.Geometry, nil)
		if err != nil {
			return datastructure.RawFeature{}, fmt.Errorf("decompressing geometry of %s/%d: %w", kind, id, err)
		}
		g, err := wkb.Unmarshal(raw)
		if err != nil {
			return datastructure.RawFeature{}, fmt.Errorf("decoding geometry of %s/%d: %w", kind, id, err)
		}
		f.Geometry = g
	}
	return f, nil
}

// featureKey encodes id big-endian so cursor order is id order.
func featureKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}
