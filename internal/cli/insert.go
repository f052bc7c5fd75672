package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/recordq/internal/record"
	"github.com/roach88/recordq/internal/validate"
)

// InsertOptions holds flags for the insert command.
type InsertOptions struct {
	*RootOptions
	ID         int64
	Name       string
	Age        int64
	Department string
	JSON       string
}

// InsertResult is the payload of a successful insert.
type InsertResult struct {
	Message  string `json:"message"`
	Dataset  string `json:"dataset"`
	RecordID int64  `json:"recordId"`
}

func (r InsertResult) String() string {
	return fmt.Sprintf("%s: id %d in %s", r.Message, r.RecordID, r.Dataset)
}

// NewInsertCommand creates the insert command.
func NewInsertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InsertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "insert <dataset>",
		Short: "Insert one record into a dataset",
		Long: `Insert one record into a dataset.

The record is given either with field flags or as a JSON object. Ids are
unique across all datasets. Any datasetName in the JSON is ignored.

Exit codes:
  0 - Record inserted
  1 - Record rejected (validation, missing or duplicate id)
  2 - Command error (bad JSON, database unavailable)

Examples:
  recordq insert employee_dataset --id 1 --name "John Doe" --age 30 --department Engineering
  recordq insert employee_dataset --json '{"id":2,"name":"Jane Smith","age":25,"department":"Engineering"}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := opts.record(cmd)
			if err != nil {
				return err
			}
			return runInsert(opts, cmd, args[0], rec)
		},
	}

	cmd.Flags().Int64Var(&opts.ID, "id", 0, "record id (required unless --json is used)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "record name")
	cmd.Flags().Int64Var(&opts.Age, "age", 0, "record age")
	cmd.Flags().StringVar(&opts.Department, "department", "", "record department")
	cmd.Flags().StringVar(&opts.JSON, "json", "", "record as a JSON object")
	cmd.MarkFlagsMutuallyExclusive("json", "id")
	cmd.MarkFlagsMutuallyExclusive("json", "name")
	cmd.MarkFlagsMutuallyExclusive("json", "age")
	cmd.MarkFlagsMutuallyExclusive("json", "department")

	return cmd
}

// record builds the record from flags. Unset --id and --age stay absent.
func (o *InsertOptions) record(cmd *cobra.Command) (record.Record, error) {
	if o.JSON != "" {
		var rec record.Record
		if err := json.Unmarshal([]byte(o.JSON), &rec); err != nil {
			return record.Record{}, WrapExitError(ExitCommandError, "invalid record JSON", err)
		}
		return rec, nil
	}

	rec := record.Record{Name: o.Name, Department: o.Department}
	if cmd.Flags().Changed("id") {
		rec.ID = record.Int64(o.ID)
	}
	if cmd.Flags().Changed("age") {
		rec.Age = record.Int64(o.Age)
	}
	return rec, nil
}

func runInsert(opts *InsertOptions, cmd *cobra.Command, dataset string, rec record.Record) error {
	out := opts.formatter(cmd)

	if err := validate.Record(rec); err != nil {
		return out.Fail(err)
	}

	eng, st, err := opts.openEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	stored, err := eng.Insert(cmd.Context(), dataset, rec)
	if err != nil {
		return out.Fail(err)
	}

	return out.Success(InsertResult{
		Message:  "Record added successfully",
		Dataset:  dataset,
		RecordID: stored.IDValue(),
	})
}
