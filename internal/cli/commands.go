package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/octobees/battlecards/internal/csvcodec"
	"github.com/octobees/battlecards/internal/entity"
	"github.com/octobees/battlecards/internal/importer"
	"github.com/octobees/battlecards/internal/search"
	"github.com/octobees/battlecards/internal/viewmodel"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var q search.Query

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List battlecards, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer opts.close()

			cards, err := app.Service.ListBattlecards(cmd.Context(), q)
			if err != nil {
				return err
			}
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No battlecards found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tCOMPANY\tTHREAT\tUPDATED\t")
			for _, card := range cards {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", card.ID, card.CompanyName, orDash(card.ThreatLevel), formatDate(card.LastUpdated))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&q.SearchTerm, "q", "", "search company name, summary and portfolio")
	cmd.Flags().StringVar(&q.ThreatLevel, "threat", "", "exact threat level, e.g. High")
	cmd.Flags().StringVar(&q.Vertical, "vertical", "", "one of the strongest verticals")
	cmd.Flags().StringVar(&q.Region, "region", "", "one of the strongest regions")
	return cmd
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print every populated attribute of a battlecard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer opts.close()

			card, err := app.Service.GetBattlecard(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "id\t%s\n", card.ID)
			for _, f := range entity.Fields {
				value := f.Flat(card)
				if value == "" || value == "{}" || value == "[]" {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\n", f.Column, value)
			}
			fmt.Fprintf(w, "last_updated\t%s\n", formatDate(card.LastUpdated))
			return w.Flush()
		},
	}
}

func newStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print battlecard counts per threat level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer opts.close()

			stats, err := app.Service.Stats(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "CATEGORY\tCOUNT\t")
			for _, row := range []struct {
				label string
				count int
			}{
				{"Critical", stats.Critical},
				{"High", stats.High},
				{"Medium", stats.Medium},
				{"Low", stats.Low},
				{"Very Low", stats.VeryLow},
				{"Unrated", stats.Unrated},
				{"Updated in 30 days", stats.RecentlyUpdated},
			} {
				fmt.Fprintf(w, "%s\t%d\t\n", row.label, row.count)
			}
			fmt.Fprintln(w, " \t \t")
			fmt.Fprintf(w, "TOTAL\t%d\t\n", stats.Total)
			return w.Flush()
		},
	}
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a battlecard after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer opts.close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			card, err := app.Service.GetBattlecard(ctx, args[0])
			if err != nil {
				return err
			}

			model := viewmodel.New()
			if err := dispatchAll(model,
				viewmodel.Event{Kind: viewmodel.EventSelectRecord, RecordID: card.ID},
				viewmodel.Event{Kind: viewmodel.EventRequestDelete},
			); err != nil {
				return err
			}

			if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete battlecard %q? [y/N] ", card.CompanyName)) {
				if _, err := model.Dispatch(viewmodel.Event{Kind: viewmodel.EventCancelDelete}); err != nil {
					return err
				}
				fmt.Fprintln(out, "Aborted.")
				return nil
			}

			effect, err := model.Dispatch(viewmodel.Event{Kind: viewmodel.EventConfirmDelete})
			if err != nil {
				return err
			}
			if effect.Kind != viewmodel.EffectDelete {
				return fmt.Errorf("unexpected effect %q", effect.Kind)
			}
			if err := app.Service.DeleteBattlecard(ctx, effect.RecordID); err != nil {
				_, _ = model.Dispatch(viewmodel.Event{Kind: viewmodel.EventDeleteFailed, Message: err.Error()})
				return err
			}
			fmt.Fprintf(out, "Deleted %s.\n", card.CompanyName)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create or update battlecards from a CSV file",
		Long: `Import reads a CSV file whose header matches the battlecard template, matches
rows to existing battlecards by company name (ignoring case) and writes them
one at a time. The first failing write stops the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer opts.close()

			out := cmd.OutOrStdout()
			model := viewmodel.New()
			if _, err := model.Dispatch(viewmodel.Event{Kind: viewmodel.EventOpenImport}); err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			report, err := app.Service.ImportCSV(cmd.Context(), file, func(p importer.Progress) {
				fmt.Fprintf(out, "%s: %s\n", p, p.Company)
			})
			printRowErrors(out, report.Errors)
			if err != nil {
				_, _ = model.Dispatch(viewmodel.Event{Kind: viewmodel.EventImportFailed, Message: err.Error()})
				return err
			}

			summary := fmt.Sprintf("Created %d, updated %d, %d battlecards in total.", report.Created, report.Updated, report.Total)
			if _, err := model.Dispatch(viewmodel.Event{Kind: viewmodel.EventImportFinished, Message: summary}); err != nil {
				return err
			}
			fmt.Fprintln(out, model.Notice.Message)
			return nil
		},
	}
}

func newTemplateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the CSV import template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			template := csvcodec.Template()
			if output == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), template+"\n")
				return err
			}
			if err := os.WriteFile(output, []byte(template+"\n"), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout (e.g. "+csvcodec.TemplateFilename+")")
	return cmd
}

func dispatchAll(model *viewmodel.Model, events ...viewmodel.Event) error {
	for _, ev := range events {
		if _, err := model.Dispatch(ev); err != nil {
			return err
		}
	}
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func printRowErrors(out io.Writer, rowErrors []importer.RowError) {
	for _, rowErr := range rowErrors {
		fmt.Fprintf(out, "skipped %s\n", rowErr.Error())
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}
