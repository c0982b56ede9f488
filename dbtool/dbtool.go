// Package dbtool is the maintenance command line for the survey database.
package dbtool

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/mbolis/care-survey/database"
	"github.com/mbolis/care-survey/model"
	"github.com/spf13/cobra"
)

const (
	separator    = "-----------------------------------------------------"
	notSpecified = "Not specified"
)

// Sample is the record inserted by the sample command.
var Sample = model.Submission{
	Name:              "John Doe",
	Age:               65,
	Gender:            "Male",
	MaritalStatus:     "Married",
	EducationLevel:    "Bachelor's degree",
	AnnualIncome:      "85000",
	Savings:           "450000",
	HealthRating:      "Good",
	ChronicConditions: "1 condition",
	ADLAssistance:     "Minimal assistance",
	LivingArrangement: "Live with spouse/partner",
	RetirementPlan:    "401(k)",
	FamilyHistory:     "Parents needed care",
}

type tool struct {
	dbPath string
}

// withStore opens the database for the length of one command.
func (t *tool) withStore(cmd *cobra.Command, fn func(ctx context.Context, db *sql.DB, store *database.Store) error) error {
	db, err := database.Open(t.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(cmd.Context(), db, database.NewStore(db))
}

// NewRootCommand builds the command tree. Output goes to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	t := &tool{}

	root := &cobra.Command{
		Use:   "survey-db",
		Short: "Inspect and maintain the survey database",
		Long: `Inspect and maintain the SQLite database of the long-term care survey.

The schema is brought up to date before any command runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&t.dbPath, "db", "survey.db", "path to SQLite3 DB file")

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every response, newest first",
			Args:  cobra.NoArgs,
			RunE:  t.list,
		},
		&cobra.Command{
			Use:   "schema",
			Short: "Print every table with its columns",
			Args:  cobra.NoArgs,
			RunE:  t.schema,
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Print the schema and every row of every table",
			Args:  cobra.NoArgs,
			RunE:  t.dump,
		},
		&cobra.Command{
			Use:   "sample",
			Short: "Insert a sample response",
			Args:  cobra.NoArgs,
			RunE:  t.sample,
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete one response by id",
			Args:  cobra.ExactArgs(1),
			RunE:  t.delete,
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Print counts, age statistics and distributions",
			Args:  cobra.NoArgs,
			RunE:  t.stats,
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Drop every response and recreate the table",
			Args:  cobra.NoArgs,
			RunE:  t.reset,
		},
	)

	return root
}

func orNotSpecified(s *string) string {
	if s == nil || *s == "" {
		return notSpecified
	}
	return *s
}

func (t *tool) list(cmd *cobra.Command, _ []string) error {
	return t.withStore(cmd, func(ctx context.Context, _ *sql.DB, store *database.Store) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "--- ALL SURVEY RESPONSES ---")

		responses, err := store.List(ctx)
		if err != nil {
			return err
		}
		if len(responses) == 0 {
			fmt.Fprintln(out, "No survey responses found in the database.")
			return nil
		}

		fmt.Fprintf(out, "\nTotal records found: %s\n", humanize.Comma(int64(len(responses))))
		fmt.Fprintln(out, separator)
		for i, r := range responses {
			fmt.Fprintf(out, "\n[RECORD #%d]\n%s\n", i+1, separator)
			fmt.Fprintf(out, "ID: %d\n", r.ID)
			fmt.Fprintf(out, "Name: %s\n", r.Name)
			fmt.Fprintf(out, "Age: %d\n", r.Age)
			fmt.Fprintf(out, "Gender: %s\n", orNotSpecified(r.Gender))
			fmt.Fprintf(out, "Marital Status: %s\n", orNotSpecified(r.MaritalStatus))
			fmt.Fprintf(out, "Education: %s\n", orNotSpecified(r.EducationLevel))
			fmt.Fprintf(out, "Income: $%s\n", orNotSpecified(r.AnnualIncome))
			fmt.Fprintf(out, "Savings: $%s\n", orNotSpecified(r.Savings))
			fmt.Fprintf(out, "Health: %s\n", orNotSpecified(r.HealthRating))
			fmt.Fprintf(out, "Chronic Conditions: %s\n", orNotSpecified(r.ChronicConditions))
			fmt.Fprintf(out, "Daily Assistance: %s\n", orNotSpecified(r.ADLAssistance))
			fmt.Fprintf(out, "Living Arrangement: %s\n", orNotSpecified(r.LivingArrangement))
			fmt.Fprintf(out, "Retirement Plan: %s\n", orNotSpecified(r.RetirementPlan))
			fmt.Fprintf(out, "Family History: %s\n", orNotSpecified(r.FamilyHistory))
			fmt.Fprintf(out, "Created: %s (%s)\n", r.CreatedAt.UTC().Format("2006-01-02 15:04:05"), humanize.Time(r.CreatedAt))
			fmt.Fprintln(out, separator)
		}
		return nil
	})
}

func printSchema(out io.Writer, tables []model.Table) {
	for _, table := range tables {
		fmt.Fprintf(out, "\nTable: %s\nColumns:\n", table.Name)
		for _, c := range table.Columns {
			fmt.Fprintf(out, "  - %s (%s)", c.Name, c.Type)
			if c.NotNull {
				fmt.Fprint(out, " NOT NULL")
			}
			if c.PrimaryKey {
				fmt.Fprint(out, " PRIMARY KEY")
			}
			fmt.Fprintln(out)
		}
	}
}

func (t *tool) schema(cmd *cobra.Command, _ []string) error {
	return t.withStore(cmd, func(ctx context.Context, _ *sql.DB, store *database.Store) error {
		tables, err := store.Tables(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "--- DATABASE SCHEMA ---")
		printSchema(out, tables)
		return nil
	})
}

func (t *tool) dump(cmd *cobra.Command, _ []string) error {
	return t.withStore(cmd, func(ctx context.Context, _ *sql.DB, store *database.Store) error {
		tables, err := store.Tables(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "--- Database Schema ---")
		printSchema(out, tables)

		fmt.Fprintln(out, "\n--- Database Contents ---")
		for _, table := range tables {
			columns, rows, err := store.Rows(ctx, table.Name)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\nRecords in table %s:\n", table.Name)
			if len(rows) == 0 {
				fmt.Fprintln(out, "  No records found")
				continue
			}
			for i, row := range rows {
				fmt.Fprintf(out, "\nRecord #%d:\n", i+1)
				for j, v := range row {
					fmt.Fprintf(out, "  %s: %s\n", columns[j], v)
				}
			}
		}

		fmt.Fprintln(out, "\nDatabase inspection complete.")
		return nil
	})
}

func (t *tool) sample(cmd *cobra.Command, _ []string) error {
	return t.withStore(cmd, func(ctx context.Context, _ *sql.DB, store *database.Store) error {
		id, err := store.Create(ctx, Sample.Response())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sample record added with ID: %d\n", id)
		return nil
	})
}

func (t *tool) delete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record id %q", args[0])
	}

	return t.withStore(cmd, func(ctx context.Context, _ *sql.DB, store *database.Store) error {
		found, err := store.Delete(ctx, id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if found {
			fmt.Fprintf(out, "Record with ID %d deleted successfully.\n", id)
		} else {
			fmt.Fprintf(out, "No record found with ID %d.\n", id)
		}
		return nil
	})
}

func printDistribution(out io.Writer, title string, buckets []model.Bucket) {
	fmt.Fprintf(out, "%s distribution:\n", title)
	for _, b := range buckets {
		fmt.Fprintf(out, "  - %s: %s\n", orNotSpecified(b.Value), humanize.Comma(int64(b.Count)))
	}
}

func (t *tool) stats(cmd *cobra.Command, _ []string) error {
	return t.withStore(cmd, func(ctx context.Context, _ *sql.DB, store *database.Store) error {
		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}

		avg, lo, hi := "N/A", "N/A", "N/A"
		if stats.AgeAvg != nil {
			avg = strconv.FormatFloat(*stats.AgeAvg, 'f', 1, 64)
		}
		if stats.AgeMin != nil {
			lo = strconv.Itoa(*stats.AgeMin)
		}
		if stats.AgeMax != nil {
			hi = strconv.Itoa(*stats.AgeMax)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "--- DATABASE STATISTICS ---")
		fmt.Fprintf(out, "Total responses: %s\n", humanize.Comma(int64(stats.Total)))
		fmt.Fprintf(out, "Age statistics: Avg: %s, Min: %s, Max: %s\n", avg, lo, hi)
		printDistribution(out, "Gender", stats.Genders)
		printDistribution(out, "Health rating", stats.Health)
		return nil
	})
}

func (t *tool) reset(cmd *cobra.Command, _ []string) error {
	return t.withStore(cmd, func(_ context.Context, db *sql.DB, _ *database.Store) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Dropping existing responses table...")
		err := database.Reset(db)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Database reset successfully!")
		return nil
	})
}
