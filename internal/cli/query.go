package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/recordq/internal/record"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	Order string
}

// NewGroupCommand creates the group command.
func NewGroupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "group <dataset> <field>",
		Short: "Group a dataset's records by a field",
		Long: `Group a dataset's records by the value of one field.

Fields: id, datasetName, name, age, department. Records with no value for
the field are grouped under "null".

Examples:
  recordq group employee_dataset department
  recordq group employee_dataset age --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			eng, st, err := rootOpts.openEngine()
			if err != nil {
				return err
			}
			defer st.Close()

			g, err := eng.GroupBy(cmd.Context(), args[0], args[1])
			if err != nil {
				return out.Fail(err)
			}
			return out.Groups(g)
		},
	}
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort <dataset> <field>",
		Short: "List a dataset's records ordered by a field",
		Long: `List a dataset's records ordered by one field.

Records with no value for the field sort first in ascending order. Ties
keep insertion order.

Examples:
  recordq sort employee_dataset age
  recordq sort employee_dataset name --order desc`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)
			eng, st, err := opts.openEngine()
			if err != nil {
				return err
			}
			defer st.Close()

			recs, err := eng.SortBy(cmd.Context(), args[0], args[1], opts.Order)
			if err != nil {
				return out.Fail(err)
			}
			return out.Records(recs)
		},
	}

	cmd.Flags().StringVar(&opts.Order, "order", string(record.DefaultDirection), "sort order (asc|desc)")

	return cmd
}

// NewDatasetsCommand creates the datasets command.
func NewDatasetsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "datasets",
		Short:         "List datasets and their record counts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			_, st, err := rootOpts.openEngine()
			if err != nil {
				return err
			}
			defer st.Close()

			infos, err := st.Datasets(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list datasets", err)
			}

			if rootOpts.Format == "json" {
				return out.Success(map[string]any{"datasets": infos})
			}
			if len(infos) == 0 {
				return out.Success("No datasets.")
			}
			for _, info := range infos {
				if err := out.Success(formatDataset(info.Name, info.Records)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func formatDataset(name string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%s\t1 record", name)
	}
	return fmt.Sprintf("%s\t%d records", name, n)
}
