// Package archive persists power-flow run records so past solves can be
// listed and compared. The MongoDB backend is intended for shared
// deployments; archiving is optional and off by default.
package archive

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/report"
)

// Run is one archived power-flow run.
type Run struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Case      string    `json:"case" bson:"case"`

	Converged   bool    `json:"converged" bson:"converged"`
	Iterations  int     `json:"iterations" bson:"iterations"`
	TotalLoadMW float64 `json:"total_load_mw" bson:"total_load_mw"`
	TotalLossMW float64 `json:"total_loss_mw" bson:"total_loss_mw"`
	BalanceMW   float64 `json:"balance_mw" bson:"balance_mw"`
	MinVMPU     float64 `json:"min_vm_pu" bson:"min_vm_pu"`
	MaxVMPU     float64 `json:"max_vm_pu" bson:"max_vm_pu"`
}

// NewRun builds an archive record from a run summary, assigning a fresh ID
// and timestamp.
func NewRun(s report.Summary) *Run {
	return &Run{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Case:        s.Case,
		Converged:   s.Converged,
		Iterations:  s.Iterations,
		TotalLoadMW: s.TotalLoadMW,
		TotalLossMW: s.TotalLossMW,
		BalanceMW:   s.BalanceMW,
		MinVMPU:     s.MinVMPU,
		MaxVMPU:     s.MaxVMPU,
	}
}

// Store is the interface archive backends implement.
type Store interface {
	// Put persists a run record.
	Put(ctx context.Context, run *Run) error

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// wrap tags backend failures with the archive error code.
func wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrCodeArchive, err, format, args...)
}
