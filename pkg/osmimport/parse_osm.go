// Package osmimport loads named osm features from a PBF extract into a feature store.
package osmimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/concurrent"
	"github.com/lintang-b-s/osm-places/pkg/datastructure"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// FeatureSink persists batches of features. Both the warehouse and the kv store implement it.
type FeatureSink interface {
	SaveFeatures(ctx context.Context, features []datastructure.RawFeature) error
}

// Opener returns a fresh scanner over the extract for one pass. pass is the only object
// type the pass reads; scanners may skip the others.
type Opener func(ctx context.Context, pass osm.Type) (osm.Scanner, error)

type Config struct {
	BatchSize    int
	Workers      int
	ShowProgress bool
}

type Stats struct {
	Nodes     int
	Ways      int
	Relations int
}

func (s Stats) Total() int {
	return s.Nodes + s.Ways + s.Relations
}

type Importer struct {
	sink FeatureSink
	cfg  Config
	log  *zap.Logger
}

func NewImporter(sink FeatureSink, cfg Config, log *zap.Logger) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{sink: sink, cfg: cfg, log: log}
}

type osmRelation struct {
	id      int64
	tags    map[string]string
	members osm.Members
	updated *time.Time
}

type osmWay struct {
	id      int64
	tags    map[string]string
	nodeIDs []osm.NodeID
	updated *time.Time
	named   bool
}

// ImportFile imports the osm pbf extract at mapfile.
func (im *Importer) ImportFile(ctx context.Context, mapfile string) (Stats, error) {
	return im.Import(ctx, func(ctx context.Context, pass osm.Type) (osm.Scanner, error) {
		f, err := os.Open(mapfile)
		if err != nil {
			return nil, err
		}
		scanner := osmpbf.New(ctx, f, runtime.GOMAXPROCS(-1))
		scanner.SkipNodes = pass != osm.TypeNode
		scanner.SkipWays = pass != osm.TypeWay
		scanner.SkipRelations = pass != osm.TypeRelation
		return &fileScanner{Scanner: scanner, f: f}, nil
	})
}

// Import reads relations, then ways, then nodes, and saves every named feature to the sink.
// Way and relation geometries are assembled from member node coordinates.
func (im *Importer) Import(ctx context.Context, open Opener) (Stats, error) {
	var stats Stats

	var progress io.Writer = io.Discard
	if im.cfg.ShowProgress {
		progress = ansi.NewAnsiStdout()
	}
	bar := progressbar.NewOptions(4,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/4]Scanning osm relations..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	writer := concurrent.NewBackgroundWorker(ctx, im.cfg.Workers, im.cfg.Workers*2,
		func(ctx context.Context, batch []datastructure.RawFeature) error {
			return im.sink.SaveFeatures(ctx, batch)
		})
	writer.Start()
	out := newBatcher(writer, im.cfg.BatchSize)

	fail := func(err error) (Stats, error) {
		closeErr := writer.Close()
		if closeErr != nil && !errors.Is(err, closeErr) {
			err = fmt.Errorf("%w (store: %v)", err, closeErr)
		}
		return stats, err
	}

	// relations
	relations := []osmRelation{}
	memberWays := make(map[osm.WayID]bool)
	neededNodes := make(map[osm.NodeID]bool)

	err := scan(ctx, open, osm.TypeRelation, func(o osm.Object) error {
		rel, ok := o.(*osm.Relation)
		if !ok || rel.Tags.Find("name") == "" {
			return nil
		}
		for _, m := range rel.Members {
			switch m.Type {
			case osm.TypeWay:
				memberWays[osm.WayID(m.Ref)] = true
			case osm.TypeNode:
				neededNodes[osm.NodeID(m.Ref)] = true
			}
		}
		relations = append(relations, osmRelation{
			id:      int64(rel.ID),
			tags:    rel.Tags.Map(),
			members: rel.Members,
			updated: timestamp(rel.Timestamp),
		})
		return nil
	})
	if err != nil {
		return fail(fmt.Errorf("scanning relations: %w", err))
	}
	bar.Describe("[cyan][2/4]Scanning osm ways...")
	bar.Add(1)

	// ways
	ways := make(map[osm.WayID]*osmWay)
	err = scan(ctx, open, osm.TypeWay, func(o osm.Object) error {
		w, ok := o.(*osm.Way)
		if !ok {
			return nil
		}
		named := w.Tags.Find("name") != ""
		if !named && !memberWays[w.ID] {
			return nil
		}
		nodeIDs := w.Nodes.NodeIDs()
		for _, id := range nodeIDs {
			neededNodes[id] = true
		}
		ways[w.ID] = &osmWay{
			id:      int64(w.ID),
			tags:    w.Tags.Map(),
			nodeIDs: nodeIDs,
			updated: timestamp(w.Timestamp),
			named:   named,
		}
		return nil
	})
	if err != nil {
		return fail(fmt.Errorf("scanning ways: %w", err))
	}
	bar.Describe("[cyan][3/4]Scanning osm nodes...")
	bar.Add(1)

	// nodes: named ones are emitted right away
	coords := make(map[osm.NodeID]orb.Point, len(neededNodes))
	err = scan(ctx, open, osm.TypeNode, func(o osm.Object) error {
		n, ok := o.(*osm.Node)
		if !ok {
			return nil
		}
		if neededNodes[n.ID] {
			coords[n.ID] = orb.Point{n.Lon, n.Lat}
		}
		if n.Tags.Find("name") == "" {
			return nil
		}
		f := datastructure.NewRawFeature(datastructure.KindNode, int64(n.ID), n.Tags.Map())
		f.Position = &datastructure.Position{Lat: n.Lat, Lon: n.Lon}
		f.Updated = timestamp(n.Timestamp)
		stats.Nodes++
		return out.add(f)
	})
	if err != nil {
		return fail(fmt.Errorf("scanning nodes: %w", err))
	}
	bar.Describe("[cyan][4/4]Assembling way and relation geometries...")
	bar.Add(1)

	wayLines := make(map[osm.WayID]orb.LineString, len(ways))
	for id, w := range ways {
		wayLines[id] = lineString(w.nodeIDs, coords)
	}

	for id, w := range ways {
		if !w.named {
			continue
		}
		f := datastructure.NewRawFeature(datastructure.KindWay, w.id, w.tags)
		f.Updated = w.updated
		setGeometry(&f, wayGeometry(wayLines[id]))
		stats.Ways++
		if err := out.add(f); err != nil {
			return fail(err)
		}
	}

	for _, rel := range relations {
		f := datastructure.NewRawFeature(datastructure.KindRelation, rel.id, rel.tags)
		f.Updated = rel.updated
		setGeometry(&f, relationGeometry(rel.members, coords, wayLines))
		stats.Relations++
		if err := out.add(f); err != nil {
			return fail(err)
		}
	}

	if err := out.flush(); err != nil {
		return fail(err)
	}
	if err := writer.Close(); err != nil {
		return stats, fmt.Errorf("saving features: %w", err)
	}
	bar.Add(1)

	im.log.Info("osm import finished",
		zap.Int("nodes", stats.Nodes),
		zap.Int("ways", stats.Ways),
		zap.Int("relations", stats.Relations))
	return stats, nil
}

func scan(ctx context.Context, open Opener, pass osm.Type, fn func(osm.Object) error) error {
	scanner, err := open(ctx, pass)
	if err != nil {
		return err
	}
	defer scanner.Close()

	for scanner.Scan() {
		if err := fn(scanner.Object()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return ctx.Err()
}

func timestamp(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

type fileScanner struct {
	*osmpbf.Scanner
	f *os.File
}

func (s *fileScanner) Close() error {
	err := s.Scanner.Close()
	if ferr := s.f.Close(); err == nil {
		err = ferr
	}
	return err
}
