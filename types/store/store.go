package store

import "io"

// Transaction batches writes applied atomically on Commit.
type Transaction interface {
	Set(key, value []byte) error
	Delete(key []byte) error
	Commit() error
	Abort() error
}

// Iterator walks a key range in ascending key order.
type Iterator interface {
	First() bool
	Next() bool
	Valid() bool
	Key() []byte
	Value() []byte
	Close() error
}

// KVDB is the minimal key-value surface the run store needs.
type KVDB interface {
	Get(key []byte) ([]byte, io.Closer, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	NewBatch(indexed bool) Transaction
	NewIter(lowerBound, upperBound []byte) (Iterator, error)
	Close() error
}
