package cli

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/recordq/internal/canonical"
	"github.com/roach88/recordq/internal/record"
	"github.com/roach88/recordq/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	All    bool
	Output string
}

// ExportResult is the payload of a successful export.
type ExportResult struct {
	Dataset    string `json:"dataset,omitempty"`
	Records    int    `json:"records"`
	Output     string `json:"output"`
	Compressed bool   `json:"compressed"`

	// SHA256 is the domain-separated digest of the uncompressed content.
	SHA256 string `json:"sha256"`
}

func (r ExportResult) String() string {
	scope := "all datasets"
	if r.Dataset != "" {
		scope = r.Dataset
	}
	return fmt.Sprintf("Exported %d record(s) from %s to %s", r.Records, scope, r.Output)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export [dataset]",
		Short: "Export records as newline-delimited canonical JSON",
		Long: `Export one dataset (or every dataset with --all) as newline-delimited
canonical JSON, one record per line in insertion order.

Output ending in .zst is zstd-compressed. Without -o, records are written
to stdout.

Examples:
  recordq export employee_dataset -o employees.ndjson
  recordq export --all -o backup.ndjson.zst`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.All && len(args) != 0 {
				return NewExitError(ExitCommandError, "use either a dataset or --all, not both")
			}
			if !opts.All && len(args) != 1 {
				return NewExitError(ExitCommandError, "dataset argument required (or --all)")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := ""
			if len(args) == 1 {
				dataset = args[0]
			}
			return runExport(opts, cmd, dataset)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "export every dataset")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (.zst for zstd compression)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command, dataset string) error {
	out := opts.formatter(cmd)

	_, st, err := opts.openEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := exportRecords(cmd.Context(), st, dataset)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read records", err)
	}

	if opts.Output == "" {
		return WriteNDJSON(cmd.OutOrStdout(), recs)
	}

	compressed, digest, err := writeExportFile(opts.Output, recs)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write export", err)
	}
	opts.logger().Info("export finished",
		zap.String("dataset", dataset),
		zap.Int("records", len(recs)),
		zap.String("output", opts.Output),
		zap.Bool("compressed", compressed))

	return out.Success(ExportResult{
		Dataset:    dataset,
		Records:    len(recs),
		Output:     opts.Output,
		Compressed: compressed,
		SHA256:     digest,
	})
}

func exportRecords(ctx context.Context, st *store.Store, dataset string) ([]record.Record, error) {
	if dataset == "" {
		return st.ReadAll(ctx)
	}
	return st.FindByDataset(ctx, dataset)
}

// writeExportFile writes recs to path, zstd-compressed when path ends in
// .zst, and returns the digest of the uncompressed content.
func writeExportFile(path string, recs []record.Record) (compressed bool, digest string, err error) {
	f, err := os.Create(path)
	if err != nil {
		return false, "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	h := canonical.NewHash(canonical.DomainExport)
	sum := func() string { return hex.EncodeToString(h.Sum(nil)) }

	if !strings.HasSuffix(path, ".zst") {
		if err := WriteNDJSON(io.MultiWriter(f, h), recs); err != nil {
			return false, "", err
		}
		return false, sum(), nil
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return true, "", err
	}
	if err := WriteNDJSON(io.MultiWriter(enc, h), recs); err != nil {
		enc.Close()
		return true, "", err
	}
	if err := enc.Close(); err != nil {
		return true, "", err
	}
	return true, sum(), nil
}

// WriteNDJSON writes one canonical JSON record per line.
func WriteNDJSON(w io.Writer, recs []record.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		line, err := canonical.Marshal(r)
		if err != nil {
			return fmt.Errorf("record %d: %w", r.IDValue(), err)
		}
		bw.Write(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
