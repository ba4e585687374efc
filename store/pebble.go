// Package store persists training runs in pebble, keyed by run identifier
// under a byte-prefix key schema.
package store

import (
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"

	"github.com/rpplayground/QClassify/config"
	typesStore "github.com/rpplayground/QClassify/types/store"
)

type PebbleDB struct {
	config *config.DBConfig
	db     *pebble.DB
}

var _ typesStore.KVDB = (*PebbleDB)(nil)

// NewPebbleDB opens the database at the configured path. With InMemory set
// the database lives on an in-memory filesystem, which is what the tests
// use.
func NewPebbleDB(logger *zap.Logger, config *config.DBConfig) *PebbleDB {
	options := &pebble.Options{}
	if config.InMemory {
		options.FS = vfs.NewMem()
	}

	db, err := pebble.Open(config.Path, options)
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err))
	}

	return &PebbleDB{config, db}
}

func (p *PebbleDB) Get(key []byte) ([]byte, io.Closer, error) {
	return p.db.Get(key)
}

func (p *PebbleDB) Set(key, value []byte) error {
	return p.db.Set(key, value, &pebble.WriteOptions{Sync: true})
}

func (p *PebbleDB) Delete(key []byte) error {
	return p.db.Delete(key, &pebble.WriteOptions{Sync: true})
}

func (p *PebbleDB) NewBatch(indexed bool) typesStore.Transaction {
	if indexed {
		return &PebbleTransaction{
			b: p.db.NewIndexedBatch(),
		}
	}
	return &PebbleTransaction{
		b: p.db.NewBatch(),
	}
}

func (p *PebbleDB) NewIter(lowerBound []byte, upperBound []byte) (
	typesStore.Iterator,
	error,
) {
	return p.db.NewIter(&pebble.IterOptions{
		LowerBound: lowerBound,
		UpperBound: upperBound,
	})
}

func (p *PebbleDB) Close() error {
	return p.db.Close()
}

type PebbleTransaction struct {
	b *pebble.Batch
}

var _ typesStore.Transaction = (*PebbleTransaction)(nil)

func (t *PebbleTransaction) Set(key []byte, value []byte) error {
	return t.b.Set(key, value, &pebble.WriteOptions{Sync: true})
}

func (t *PebbleTransaction) Delete(key []byte) error {
	return t.b.Delete(key, &pebble.WriteOptions{Sync: true})
}

func (t *PebbleTransaction) Commit() error {
	return t.b.Commit(&pebble.WriteOptions{Sync: true})
}

func (t *PebbleTransaction) Abort() error {
	return t.b.Close()
}
