package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/sparsetable/pkg/arrowbridge"
	"github.com/ajitpratap0/sparsetable/pkg/column"
	"github.com/ajitpratap0/sparsetable/pkg/errors"
	"github.com/ajitpratap0/sparsetable/pkg/json"
	"github.com/ajitpratap0/sparsetable/pkg/logger"
	"github.com/ajitpratap0/sparsetable/pkg/metrics"
)

// inspectFlags holds the edits applied to the column, in the order listed.
type inspectFlags struct {
	typ     string
	label   string
	sets    []string
	missing []int
	empty   []int
	inserts []string
	swaps   []string
	subset  []int
	pretty  bool
	format  string
	codec   string
	metrics bool
	steps   bool
}

func newInspectCmd(a *app) *cobra.Command {
	f := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Build a column from edits and print its state",
		Long: `Build a column from edits and print its state.

Edits are applied in this order: --set, --missing, --empty, --insert, --swap,
then --subset. Values are given as text and coerced to the column type.
With --steps the column is printed after every edit, one JSON object per line.

Example:
  sparsecol inspect --type INTEGER --set 3=10 --set 7=12 --missing 5 --insert 3=9 --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspect(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.typ, "type", "INTEGER", "Column type (BYTE, INTEGER, FLOAT, BYTE_ARRAY, CHAR_ARRAY)")
	flags.StringVar(&f.label, "label", "", "Column label")
	flags.StringArrayVar(&f.sets, "set", nil, "Store a value, as row=value (repeatable)")
	flags.IntSliceVar(&f.missing, "missing", nil, "Rows to flag as missing")
	flags.IntSliceVar(&f.empty, "empty", nil, "Rows to flag as empty")
	flags.StringArrayVar(&f.inserts, "insert", nil, "Insert a value, as row=value, shifting occupied rows up (repeatable)")
	flags.StringArrayVar(&f.swaps, "swap", nil, "Swap two rows, as a:b (repeatable)")
	flags.IntSliceVar(&f.subset, "subset", nil, "Keep only these rows, renumbered from 0")
	flags.BoolVar(&f.pretty, "pretty", false, "Indent JSON output")
	flags.StringVar(&f.format, "format", "json", "Output format (json, arrow, parquet)")
	flags.StringVar(&f.codec, "compression", "", "Compression for arrow (lz4, zstd) or parquet (lz4, zstd, snappy) output")
	flags.BoolVar(&f.metrics, "metrics", false, "Print collected metrics to stderr in Prometheus text format")
	flags.BoolVar(&f.steps, "steps", false, "Print the column after every edit as JSON lines (json format only)")
	return cmd
}

func (a *app) inspect(ctx context.Context, out, errOut io.Writer, f *inspectFlags) error {
	typ, err := column.ParseType(f.typ)
	if err != nil {
		return err
	}
	if f.steps && !strings.EqualFold(f.format, "json") {
		return errors.Newf(errors.ErrorTypeValidation, "--steps requires json output, got %q", f.format)
	}

	ctx = logger.NewContext(ctx, a.log)
	ctx = context.WithValue(ctx, logger.ColumnKey, f.label)
	ctx = context.WithValue(ctx, logger.OperationKey, "inspect")
	log := logger.WithContext(ctx)

	var collector *metrics.Collector
	if f.metrics || a.cfg.Metrics.Enabled {
		collector = metrics.NewCollector(nil)
	}

	col, err := column.New(typ, a.cfg.ColumnOptions(
		column.WithLabel(f.label),
		column.WithLogger(a.log.Named("column")),
		column.WithMetrics(collector),
	)...)
	if err != nil {
		return err
	}

	var trace *stepTrace
	if f.steps {
		trace = &stepTrace{enc: json.NewStreamingEncoder(out, false, false)}
	}
	if col, err = applyEdits(col, f, trace); err != nil {
		return err
	}
	log.Debug("column built",
		zap.Stringer("type", col.Type()),
		zap.Int("rows", col.NumRows()),
		zap.Int("entries", col.NumEntries()))

	if trace != nil {
		err = trace.close()
	} else {
		err = writeColumn(out, col, f)
	}
	if err != nil {
		return err
	}
	if f.metrics && collector != nil {
		return writeMetrics(errOut, collector)
	}
	return nil
}

// step is one line of --steps output.
type step struct {
	Step   string          `json:"step"`
	Column column.Snapshot `json:"column"`
}

// stepTrace writes the column state after each edit. A nil trace records
// nothing.
type stepTrace struct {
	enc *json.StreamingEncoder
}

func (t *stepTrace) record(what string, col column.Column) error {
	if t == nil {
		return nil
	}
	return t.enc.Encode(step{Step: what, Column: col.Snapshot()})
}

func (t *stepTrace) close() error { return t.enc.Close() }

// storeError adds the row and column type to a rejected value.
func storeError(err error, row int, value string, col column.Column) error {
	if errors.IsConversion(err) {
		return errors.Wrap(err, errors.ErrorTypeValidation,
			fmt.Sprintf("row %d: cannot store %q in a %v column", row, value, col.Type()))
	}
	return err
}

func applyEdits(col column.Column, f *inspectFlags, trace *stepTrace) (column.Column, error) {
	for _, s := range f.sets {
		row, value, err := parseAssignment(s)
		if err != nil {
			return nil, err
		}
		if err := col.SetString(value, row); err != nil {
			return nil, storeError(err, row, value, col)
		}
		if err := trace.record("set "+s, col); err != nil {
			return nil, err
		}
	}
	for _, row := range f.missing {
		if err := checkRow(row); err != nil {
			return nil, err
		}
		col.SetValueToMissing(true, row)
		if err := trace.record(fmt.Sprintf("missing %d", row), col); err != nil {
			return nil, err
		}
	}
	for _, row := range f.empty {
		if err := checkRow(row); err != nil {
			return nil, err
		}
		col.SetValueToEmpty(true, row)
		if err := trace.record(fmt.Sprintf("empty %d", row), col); err != nil {
			return nil, err
		}
	}
	for _, s := range f.inserts {
		row, value, err := parseAssignment(s)
		if err != nil {
			return nil, err
		}
		if err := col.InsertRow(value, row); err != nil {
			return nil, storeError(err, row, value, col)
		}
		if err := trace.record("insert "+s, col); err != nil {
			return nil, err
		}
	}
	for _, s := range f.swaps {
		a, b, err := parseSwap(s)
		if err != nil {
			return nil, err
		}
		col.SwapRows(a, b)
		if err := trace.record("swap "+s, col); err != nil {
			return nil, err
		}
	}
	if len(f.subset) > 0 {
		col = col.SubsetIndices(f.subset)
		if err := trace.record("subset", col); err != nil {
			return nil, err
		}
	}
	return col, nil
}

func writeColumn(out io.Writer, col column.Column, f *inspectFlags) error {
	codec, err := arrowbridge.ParseCodec(f.codec)
	if err != nil {
		return err
	}
	switch strings.ToLower(f.format) {
	case "json":
		return json.Encode(out, col.Snapshot(), f.pretty)
	case "arrow":
		return arrowbridge.WriteIPCCompressed(out, memory.NewGoAllocator(), codec, col)
	case "parquet":
		if f.codec == "" {
			codec = arrowbridge.CodecSnappy
		}
		return arrowbridge.WriteParquetCompressed(out, memory.NewGoAllocator(), codec, col)
	}
	return errors.Newf(errors.ErrorTypeValidation, "unknown output format %q", f.format)
}

func writeMetrics(w io.Writer, collector *metrics.Collector) error {
	families, err := collector.Registry().Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// parseAssignment splits "row=value".
func parseAssignment(s string) (int, string, error) {
	rowText, value, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", errors.Newf(errors.ErrorTypeValidation, "expected row=value, got %q", s)
	}
	row, err := parseRow(rowText)
	if err != nil {
		return 0, "", err
	}
	return row, value, nil
}

// parseSwap splits "a:b".
func parseSwap(s string) (int, int, error) {
	left, right, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, errors.Newf(errors.ErrorTypeValidation, "expected a:b, got %q", s)
	}
	a, err := parseRow(left)
	if err != nil {
		return 0, 0, err
	}
	b, err := parseRow(right)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseRow(s string) (int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeValidation, fmt.Sprintf("invalid row %q", s))
	}
	return row, checkRow(row)
}

// checkRow rejects rows the column API would panic on.
func checkRow(row int) error {
	if row < 0 {
		return errors.Newf(errors.ErrorTypeValidation, "row %d is negative", row)
	}
	return nil
}
