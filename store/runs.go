package store

import (
	"encoding/json"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	typesStore "github.com/rpplayground/QClassify/types/store"
)

const (
	RUN = 0x01

	RUN_BY_ID = 0x00
)

var ErrNotFound = errors.New("run not found")

var _ typesStore.RunStore = (*PebbleRunStore)(nil)

type PebbleRunStore struct {
	db     typesStore.KVDB
	logger *zap.Logger
}

func NewPebbleRunStore(
	db typesStore.KVDB,
	logger *zap.Logger,
) *PebbleRunStore {
	return &PebbleRunStore{
		db,
		logger,
	}
}

func runKey(id string) []byte {
	key := []byte{RUN, RUN_BY_ID}
	key = append(key, []byte(id)...)
	return key
}

func (p *PebbleRunStore) NewTransaction(indexed bool) (
	typesStore.Transaction,
	error,
) {
	return p.db.NewBatch(indexed), nil
}

func (p *PebbleRunStore) PutRun(
	txn typesStore.Transaction,
	run *typesStore.TrainingRun,
) error {
	if run.ID == "" {
		return errors.Wrap(errors.New("run has no id"), "put run")
	}

	data, err := json.Marshal(run)
	if err != nil {
		return errors.Wrap(err, "put run")
	}

	if err = txn.Set(runKey(run.ID), data); err != nil {
		return errors.Wrap(err, "put run")
	}

	return nil
}

func (p *PebbleRunStore) GetRun(id string) (*typesStore.TrainingRun, error) {
	data, closer, err := p.db.Get(runKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get run")
	}
	defer closer.Close()

	run := &typesStore.TrainingRun{}
	if err = json.Unmarshal(data, run); err != nil {
		return nil, errors.Wrap(err, "get run")
	}

	return run, nil
}

func (p *PebbleRunStore) DeleteRun(
	txn typesStore.Transaction,
	id string,
) error {
	if err := txn.Delete(runKey(id)); err != nil {
		return errors.Wrap(err, "delete run")
	}

	return nil
}

func (p *PebbleRunStore) RangeRuns() ([]*typesStore.TrainingRun, error) {
	iter, err := p.db.NewIter(
		[]byte{RUN, RUN_BY_ID},
		[]byte{RUN, RUN_BY_ID + 1},
	)
	if err != nil {
		return nil, errors.Wrap(err, "range runs")
	}
	defer iter.Close()

	runs := []*typesStore.TrainingRun{}
	for iter.First(); iter.Valid(); iter.Next() {
		run := &typesStore.TrainingRun{}
		if err = json.Unmarshal(iter.Value(), run); err != nil {
			return nil, errors.Wrap(err, "range runs")
		}
		runs = append(runs, run)
	}

	return runs, nil
}
