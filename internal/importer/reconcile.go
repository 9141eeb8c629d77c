package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/octobees/battlecards/internal/csvcodec"
	"github.com/octobees/battlecards/internal/entity"
)

// firstDataRow is the file line number of the first row after the header.
const firstDataRow = 2

// ErrNoValidRecords is returned when a plan has nothing to create or update.
var ErrNoValidRecords = errors.New("no valid records to import")

// RowError reports a rejected row by its file line number.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Plan partitions parsed rows into records to create and records to update.
type Plan struct {
	ToCreate []entity.Battlecard
	ToUpdate []entity.Battlecard
	Errors   []RowError
}

// Empty reports whether the plan has no record to persist. Callers must treat
// an empty plan as ErrNoValidRecords even when Errors is empty.
func (p Plan) Empty() bool {
	return len(p.ToCreate) == 0 && len(p.ToUpdate) == 0
}

// ConvertFunc turns a parsed row into a record.
type ConvertFunc func(csvcodec.Row) (entity.Battlecard, error)

// Reconcile classifies rows against the existing records using csvcodec.Convert.
func Reconcile(rows []csvcodec.Row, existing []entity.Battlecard) Plan {
	return ReconcileWith(rows, existing, csvcodec.Convert)
}

// ReconcileWith is Reconcile with a custom row converter. A row whose name is
// blank or whose conversion fails is reported and skipped. Remaining rows are
// matched by case-insensitive company name: a match takes the existing ID and
// is updated, anything else is created.
func ReconcileWith(rows []csvcodec.Row, existing []entity.Battlecard, convert ConvertFunc) Plan {
	byName := make(map[string]string, len(existing))
	for _, record := range existing {
		key := strings.ToLower(record.CompanyName)
		if _, ok := byName[key]; !ok {
			byName[key] = record.ID
		}
	}

	plan := Plan{
		ToCreate: []entity.Battlecard{},
		ToUpdate: []entity.Battlecard{},
		Errors:   []RowError{},
	}
	for i, row := range rows {
		line := i + firstDataRow
		if strings.TrimSpace(row["company_name"]) == "" {
			plan.Errors = append(plan.Errors, RowError{Row: line, Message: "Company name is required"})
			continue
		}

		record, err := convert(row)
		if err != nil {
			plan.Errors = append(plan.Errors, RowError{Row: line, Message: err.Error()})
			continue
		}

		if id, ok := byName[strings.ToLower(record.CompanyName)]; ok {
			record.ID = id
			plan.ToUpdate = append(plan.ToUpdate, record)
		} else {
			plan.ToCreate = append(plan.ToCreate, record)
		}
	}
	return plan
}
