package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/octobees/battlecards/internal/csvcodec"
	"github.com/octobees/battlecards/internal/entity"
	"github.com/octobees/battlecards/internal/importer"
	"github.com/octobees/battlecards/internal/logging"
	"github.com/octobees/battlecards/internal/metrics"
)

// ErrImportTooLarge is returned when an uploaded file exceeds the configured limit.
var ErrImportTooLarge = errors.New("import file is too large")

// ImportReport summarizes a finished import. Records holds the catalogue as
// re-read from the store once every call has succeeded.
type ImportReport struct {
	Created int                 `json:"created"`
	Updated int                 `json:"updated"`
	Errors  []importer.RowError `json:"errors"`
	Total   int                 `json:"total"`
	Records []entity.Battlecard `json:"-"`
}

// ImportCSV parses r, reconciles it against the stored catalogue by company
// name and writes the resulting creates and updates one at a time. Header
// problems fail with *csvcodec.FormatError, a file yielding nothing to write
// fails with importer.ErrNoValidRecords and the first failing write aborts the
// run with *importer.ApplyError. Row errors are reported, not fatal.
func (s *BattlecardsService) ImportCSV(ctx context.Context, r io.Reader, progress importer.ProgressFunc) (ImportReport, error) {
	started := s.now()
	log := logging.FromContext(ctx)

	report, err := s.importCSV(ctx, r, progress, log)
	elapsed := s.now().Sub(started)

	var applyErr *importer.ApplyError
	switch {
	case err == nil:
		metrics.RecordImport(metrics.ImportSucceeded, report.Created, report.Updated, len(report.Errors), elapsed)
		log.WithFields(logrus.Fields{
			"created":    report.Created,
			"updated":    report.Updated,
			"row_errors": len(report.Errors),
			"total":      report.Total,
		}).Info("battlecard import finished")
	case errors.As(err, &applyErr):
		metrics.RecordImport(metrics.ImportAborted, report.Created, report.Updated, len(report.Errors), elapsed)
		log.WithError(err).WithFields(logrus.Fields{
			"created": report.Created,
			"updated": report.Updated,
		}).Error("battlecard import aborted")
	default:
		metrics.RecordImport(metrics.ImportRejected, 0, 0, len(report.Errors), elapsed)
		log.WithError(err).Warn("battlecard import rejected")
	}
	return report, err
}

func (s *BattlecardsService) importCSV(ctx context.Context, r io.Reader, progress importer.ProgressFunc, log *logrus.Entry) (ImportReport, error) {
	text, err := s.readLimited(r)
	if err != nil {
		return ImportReport{}, err
	}

	rows, err := csvcodec.Parse(text)
	if err != nil {
		return ImportReport{}, err
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return ImportReport{}, fmt.Errorf("load existing battlecards: %w", err)
	}

	plan := importer.Reconcile(rows, existing)
	report := ImportReport{Errors: plan.Errors}
	if plan.Empty() {
		return report, importer.ErrNoValidRecords
	}

	now := s.now().UTC()
	for i := range plan.ToCreate {
		plan.ToCreate[i].LastUpdated = &now
	}
	for i := range plan.ToUpdate {
		plan.ToUpdate[i].LastUpdated = &now
	}

	result, err := importer.Apply(ctx, s.repo, plan, func(p importer.Progress) {
		log.WithField("company", p.Company).Debug(p.String())
		if progress != nil {
			progress(p)
		}
	})
	report.Created = result.Created
	report.Updated = result.Updated
	if err != nil {
		return report, err
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return report, fmt.Errorf("reload battlecards: %w", err)
	}
	report.Records = records
	report.Total = len(records)
	return report, nil
}

func (s *BattlecardsService) readLimited(r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("import reader is nil")
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxImportBytes+1))
	if err != nil {
		return "", fmt.Errorf("read import file: %w", err)
	}
	if int64(len(data)) > s.maxImportBytes {
		return "", ErrImportTooLarge
	}
	return string(data), nil
}
