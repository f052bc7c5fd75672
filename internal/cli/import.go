package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/roach88/recordq/internal/record"
	"github.com/roach88/recordq/internal/validate"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Dataset string
	Workers int
}

// ImportFile is the on-disk shape of an import file (YAML or JSON).
type ImportFile struct {
	Dataset string          `yaml:"dataset" json:"dataset"`
	Records []record.Record `yaml:"records" json:"records"`
}

// ImportResult is the payload of a successful import.
type ImportResult struct {
	Dataset  string `json:"dataset"`
	Imported int    `json:"imported"`
}

func (r ImportResult) String() string {
	return fmt.Sprintf("Imported %d record(s) into %s", r.Imported, r.Dataset)
}

// RecordError ties a failure to its position in the import file.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("records[%d]: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file.yaml|file.json>",
		Short: "Bulk insert records from a file",
		Long: `Bulk insert records from a YAML or JSON file:

  dataset: employee_dataset
  records:
    - {id: 1, name: John Doe, age: 30, department: Engineering}

Every record is validated first, concurrently. Records are then inserted
one by one in file order; the first rejected record stops the import and
earlier records stay inserted.

Examples:
  recordq import employees.yaml
  recordq import staff.json --dataset staff --workers 8`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Dataset, "dataset", "", "target dataset (overrides the file's dataset)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent validators (default from config)")

	return cmd
}

func runImport(opts *ImportOptions, cmd *cobra.Command, path string) error {
	out := opts.formatter(cmd)
	log := opts.logger()

	file, err := LoadImportFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load import file", err)
	}
	dataset := file.Dataset
	if opts.Dataset != "" {
		dataset = opts.Dataset
	}
	if dataset == "" {
		return NewExitError(ExitCommandError, "dataset not set (add dataset to the file or use --dataset)")
	}

	workers := opts.Workers
	if workers <= 0 && opts.Config != nil {
		workers = opts.Config.Import.Workers
	}

	if err := ValidateRecords(cmd.Context(), file.Records, workers); err != nil {
		return out.Fail(err)
	}
	log.Debug("import validated", zap.String("dataset", dataset), zap.Int("records", len(file.Records)))

	eng, st, err := opts.openEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	for i, rec := range file.Records {
		if _, err := eng.Insert(cmd.Context(), dataset, rec); err != nil {
			log.Warn("import stopped", zap.Int("index", i), zap.Int("inserted", i), zap.Error(err))
			return out.Fail(&RecordError{Index: i, Err: err})
		}
	}

	log.Info("import finished", zap.String("dataset", dataset), zap.Int("records", len(file.Records)))
	return out.Success(ImportResult{Dataset: dataset, Imported: len(file.Records)})
}

// LoadImportFile reads an import file. Files ending in .json are decoded
// as JSON; anything else as YAML. Unknown keys are rejected in both.
func LoadImportFile(path string) (*ImportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file ImportFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return &file, nil
}

// ValidateRecords validates recs on up to workers goroutines. The first
// failure cancels the remaining workers; of the failures seen, the one
// with the lowest index is returned as *RecordError. Each worker owns its
// own validator.
func ValidateRecords(ctx context.Context, recs []record.Record, workers int) error {
	if workers < 1 {
		workers = 1
	}
	if workers > len(recs) {
		workers = len(recs)
	}

	failures := make([]error, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			v, err := validate.New()
			if err != nil {
				return err
			}
			for i := w; i < len(recs); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := v.Record(recs[i]); err != nil {
					failures[i] = err
					return &RecordError{Index: i, Err: err}
				}
			}
			return nil
		})
	}

	groupErr := g.Wait()
	for i, err := range failures {
		if err != nil {
			return &RecordError{Index: i, Err: err}
		}
	}
	return groupErr
}
