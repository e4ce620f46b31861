package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/wbrown/janus-triples/datalog"
)

// tripleKeyPrefix prefixes every triple key in a snapshot. The rest of the
// key is the big-endian position of the triple, so key order is input order.
var tripleKeyPrefix = []byte("t/")

// tripleKey returns the snapshot key for the triple at position seq
func tripleKey(seq uint64) []byte {
	key := make([]byte, 0, len(tripleKeyPrefix)+8)
	key = append(key, tripleKeyPrefix...)
	return binary.BigEndian.AppendUint64(key, seq)
}

// OpenBadger opens a BadgerDB directory for triple snapshots.
// An empty path opens an in-memory instance.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return db, nil
}

// WriteBadgerSnapshot replaces the triple snapshot stored in db with triples
func WriteBadgerSnapshot(db *badger.DB, triples []datalog.Triple) error {
	if err := db.DropPrefix(tripleKeyPrefix); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	wb := db.NewWriteBatch()
	defer wb.Cancel()

	for i, t := range triples {
		value, err := datalog.EncodeTriple(t)
		if err != nil {
			return fmt.Errorf("failed to encode triple %d: %w", i, err)
		}
		if err := wb.Set(tripleKey(uint64(i)), value); err != nil {
			return fmt.Errorf("failed to write triple %d: %w", i, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}

// BadgerSupplier supplies the triple snapshot stored in a BadgerDB
type BadgerSupplier struct {
	db    *badger.DB
	owned bool // close db on Close
}

// NewBadgerSupplier reads triples from an already open BadgerDB.
// Close does not close db.
func NewBadgerSupplier(db *badger.DB) *BadgerSupplier {
	return &BadgerSupplier{db: db}
}

// OpenBadgerSupplier opens the BadgerDB at path and reads triples from it
func OpenBadgerSupplier(path string) (*BadgerSupplier, error) {
	db, err := OpenBadger(path)
	if err != nil {
		return nil, err
	}
	return &BadgerSupplier{db: db, owned: true}, nil
}

// Triples implements Supplier, returning the snapshot in stored order
func (s *BadgerSupplier) Triples() ([]datalog.Triple, error) {
	var triples []datalog.Triple

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = tripleKeyPrefix
		opts.PrefetchSize = 1000

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(tripleKeyPrefix); it.ValidForPrefix(tripleKeyPrefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				t, err := datalog.DecodeTriple(val)
				if err != nil {
					return fmt.Errorf("key %x: %w", item.Key(), err)
				}
				triples = append(triples, t)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return triples, nil
}

// Close releases the underlying BadgerDB if this supplier opened it
func (s *BadgerSupplier) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
