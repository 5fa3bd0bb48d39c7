package osmimport

import (
	"github.com/lintang-b-s/osm-places/pkg/concurrent"
	"github.com/lintang-b-s/osm-places/pkg/datastructure"
)

type batcher struct {
	writer *concurrent.BackgroundWorker[[]datastructure.RawFeature]
	size   int
	batch  []datastructure.RawFeature
}

func newBatcher(writer *concurrent.BackgroundWorker[[]datastructure.RawFeature], size int) *batcher {
	return &batcher{writer: writer, size: size, batch: make([]datastructure.RawFeature, 0, size)}
}

func (b *batcher) add(f datastructure.RawFeature) error {
	b.batch = append(b.batch, f)
	if len(b.batch) < b.size {
		return nil
	}
	return b.flush()
}

func (b *batcher) flush() error {
	if len(b.batch) == 0 {
		return nil
	}
	batch := b.batch
	b.batch = make([]datastructure.RawFeature, 0, b.size)
	return b.writer.Submit(batch)
}
