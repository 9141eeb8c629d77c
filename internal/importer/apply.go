package importer

import (
	"context"
	"fmt"

	"github.com/octobees/battlecards/internal/entity"
)

// Gateway is the subset of the battlecards repository the importer writes through.
type Gateway interface {
	Create(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error)
	Update(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error)
}

// Operation names the gateway call a progress event or failure belongs to.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
)

// Progress is emitted after every successful gateway call.
type Progress struct {
	Operation Operation
	Done      int
	Total     int
	Company   string
}

// String renders the event the way it is shown to operators, e.g. "Created 3/10".
func (p Progress) String() string {
	verb := "Created"
	if p.Operation == OperationUpdate {
		verb = "Updated"
	}
	return fmt.Sprintf("%s %d/%d", verb, p.Done, p.Total)
}

// ProgressFunc receives progress events. It may be nil.
type ProgressFunc func(Progress)

// Result counts the records persisted by Apply.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// ApplyError reports the call that aborted an import. Records persisted
// before it stay persisted.
type ApplyError struct {
	Operation Operation
	Company   string
	Err       error
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Operation, e.Company, e.Err)
}

// Unwrap exposes the gateway error.
func (e *ApplyError) Unwrap() error { return e.Err }

// Apply replays the plan one call at a time: all creates in order, then all
// updates in order. The first failing call stops the run and nothing after it
// is attempted.
func Apply(ctx context.Context, gateway Gateway, plan Plan, progress ProgressFunc) (Result, error) {
	var result Result

	for i := range plan.ToCreate {
		record := plan.ToCreate[i]
		if err := ctx.Err(); err != nil {
			return result, &ApplyError{Operation: OperationCreate, Company: record.CompanyName, Err: err}
		}
		if _, err := gateway.Create(ctx, &record); err != nil {
			return result, &ApplyError{Operation: OperationCreate, Company: record.CompanyName, Err: err}
		}
		result.Created++
		notify(progress, Progress{Operation: OperationCreate, Done: result.Created, Total: len(plan.ToCreate), Company: record.CompanyName})
	}

	for i := range plan.ToUpdate {
		record := plan.ToUpdate[i]
		if err := ctx.Err(); err != nil {
			return result, &ApplyError{Operation: OperationUpdate, Company: record.CompanyName, Err: err}
		}
		if _, err := gateway.Update(ctx, &record); err != nil {
			return result, &ApplyError{Operation: OperationUpdate, Company: record.CompanyName, Err: err}
		}
		result.Updated++
		notify(progress, Progress{Operation: OperationUpdate, Done: result.Updated, Total: len(plan.ToUpdate), Company: record.CompanyName})
	}

	return result, nil
}

func notify(progress ProgressFunc, event Progress) {
	if progress != nil {
		progress(event)
	}
}
