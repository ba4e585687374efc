package store

import "time"

// TrainingRun is the persisted record of one completed training run.
type TrainingRun struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	Method         string    `json:"method"`
	Objective      string    `json:"objective"`
	Weights        []float64 `json:"weights"`
	LossHistory    []float64 `json:"lossHistory"`
	MinLossHistory []float64 `json:"minLossHistory"`
	FinalLoss      float64   `json:"finalLoss"`
	Converged      bool      `json:"converged"`
}

// RunStore persists training runs for later inspection.
type RunStore interface {
	NewTransaction(indexed bool) (Transaction, error)
	PutRun(txn Transaction, run *TrainingRun) error
	GetRun(id string) (*TrainingRun, error)
	DeleteRun(txn Transaction, id string) error
	RangeRuns() ([]*TrainingRun, error)
}
