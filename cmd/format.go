package main

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/import-formatter/internal/export"
	"github.com/sells-group/import-formatter/internal/fetcher"
	"github.com/sells-group/import-formatter/internal/infer"
	"github.com/sells-group/import-formatter/internal/mapper"
	"github.com/sells-group/import-formatter/internal/model"
	"github.com/sells-group/import-formatter/internal/preset"
	"github.com/sells-group/import-formatter/internal/process"
	"github.com/sells-group/import-formatter/internal/schema"
	"github.com/sells-group/import-formatter/internal/store"
)

var (
	formatOutputDir       string
	formatOutputFormat    string
	formatPreset          string
	formatConcurrency     int
	formatCharset         string
	formatSheet           string
	formatStrict          bool
	formatCorrectDates    bool
	formatUppercase       bool
	formatInferCivility   bool
	formatInferUserType   bool
	formatCivilityDefault string
	formatUserTypeDefault string
	formatTypeMap         []string
	formatRequireChoice   bool
)

var formatCmd = &cobra.Command{
	Use:   "format <file>...",
	Short: "Format one or more user files for import",
	Long: `Reads each file, maps its columns onto the import template, normalizes
every field and writes the formatted output next to it, together with an
HTML report and a diagnostics CSV.

Examples:
  # One file, default corrections
  importfmt format export-promo-2024.xlsx

  # Whole directory of CSVs, strict validation
  importfmt format exports/*.csv --strict

  # Re-run after an operator decision on the user type
  importfmt format export.xlsx --default-user-type 1

  # Map raw type labels directly
  importfmt format export.xlsx --type-map "Ancien élève=1" --type-map "En cours=5"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		switch formatOutputFormat {
		case "csv", "xlsx", "both":
		default:
			return eris.Errorf("format: unknown output format %q", formatOutputFormat)
		}

		opts, err := buildOptions(cmd)
		if err != nil {
			return err
		}

		var mapping mapper.Mapping
		if formatPreset != "" {
			mapping, err = preset.Load(formatPreset)
			if err != nil {
				return err
			}
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(formatConcurrency)

		var failed, needChoice, rowErrors atomic.Int64
		for _, path := range args {
			path := path
			g.Go(func() error {
				res, runErr := formatFile(gCtx, st, path, mapping, opts)
				if runErr != nil {
					failed.Add(1)
					zap.L().Error("format: file failed",
						zap.String("file", path),
						zap.Error(runErr),
					)
					return nil // don't abort the batch on individual failure
				}
				if res.NeedsUserTypeChoice {
					needChoice.Add(1)
				}
				rowErrors.Add(int64(len(res.Errors)))
				return nil
			})
		}
		_ = g.Wait()

		zap.L().Info("format: batch complete",
			zap.Int("total", len(args)),
			zap.Int64("failed", failed.Load()),
			zap.Int64("need_user_type_choice", needChoice.Load()),
		)

		if needChoice.Load() > 0 {
			zap.L().Warn("format: some files need a user-type decision; re-run with --default-user-type or --type-map")
		}
		if failed.Load() > 0 {
			return eris.Errorf("format: %d of %d files failed", failed.Load(), len(args))
		}
		if rowErrors.Load() > 0 {
			return eris.Errorf("format: %d row errors remain, see the diagnostics files", rowErrors.Load())
		}
		return nil
	},
}

func init() {
	formatCmd.Flags().StringVarP(&formatOutputDir, "output-dir", "o", "", "directory for output files (default: next to each input)")
	formatCmd.Flags().StringVar(&formatOutputFormat, "format", "csv", "output format: csv, xlsx or both")
	formatCmd.Flags().StringVar(&formatPreset, "preset", "", "column mapping preset file (json or yaml)")
	formatCmd.Flags().IntVar(&formatConcurrency, "concurrency", 3, "max files to process concurrently")
	formatCmd.Flags().StringVar(&formatCharset, "charset", "", "source charset for CSV files (e.g. latin1)")
	formatCmd.Flags().StringVar(&formatSheet, "sheet", "", "worksheet name for XLSX files (default: first sheet)")
	formatCmd.Flags().BoolVar(&formatStrict, "strict", false, "treat suspect values as row errors")
	formatCmd.Flags().BoolVar(&formatCorrectDates, "correct-dates", true, "reformat dates to jj/mm/aaaa")
	formatCmd.Flags().BoolVar(&formatUppercase, "uppercase-surnames", true, "uppercase surname fields")
	formatCmd.Flags().BoolVar(&formatInferCivility, "infer-civility", true, "deduce civility from the first name")
	formatCmd.Flags().BoolVar(&formatInferUserType, "infer-user-type", true, "deduce user-type codes from free-text labels")
	formatCmd.Flags().StringVar(&formatCivilityDefault, "civility-fallback", "", "civility applied when nothing else resolves (M. or Mme)")
	formatCmd.Flags().StringVar(&formatUserTypeDefault, "default-user-type", "", "user type applied to unresolved rows (1 or 5)")
	formatCmd.Flags().StringArrayVar(&formatTypeMap, "type-map", nil, "raw label to code mapping, repeatable (label=code)")
	formatCmd.Flags().BoolVar(&formatRequireChoice, "require-user-type", true, "fail rows whose user type cannot be resolved")
	rootCmd.AddCommand(formatCmd)
}

// buildOptions merges the config defaults with explicit flag overrides.
func buildOptions(cmd *cobra.Command) (process.Options, error) {
	opts := process.Options{
		CorrectDates:          cfg.Format.CorrectDates,
		UppercaseSurnames:     cfg.Format.UppercaseSurnames,
		AutoInferCivility:     cfg.Format.AutoInferCivility,
		AutoInferUserType:     cfg.Format.AutoInferUserType,
		Strict:                cfg.Format.Strict,
		CivilityFallback:      cfg.Format.CivilityFallback,
		DefaultUserType:       cfg.Format.DefaultUserType,
		RequireUserTypeChoice: formatRequireChoice,
	}
	flags := cmd.Flags()
	if flags.Changed("correct-dates") {
		opts.CorrectDates = formatCorrectDates
	}
	if flags.Changed("uppercase-surnames") {
		opts.UppercaseSurnames = formatUppercase
	}
	if flags.Changed("infer-civility") {
		opts.AutoInferCivility = formatInferCivility
	}
	if flags.Changed("infer-user-type") {
		opts.AutoInferUserType = formatInferUserType
	}
	if flags.Changed("strict") {
		opts.Strict = formatStrict
	}
	if flags.Changed("civility-fallback") {
		opts.CivilityFallback = formatCivilityDefault
	}
	if flags.Changed("default-user-type") {
		opts.DefaultUserType = formatUserTypeDefault
	}

	if len(formatTypeMap) > 0 {
		opts.UserTypeValues = make(map[string]string, len(formatTypeMap))
		for _, kv := range formatTypeMap {
			label, code, ok := strings.Cut(kv, "=")
			if !ok {
				return opts, eris.Errorf("format: invalid --type-map entry %q, expected label=code", kv)
			}
			if code != infer.UserTypeGraduate && code != infer.UserTypeStudent {
				return opts, eris.Errorf("format: invalid user-type code %q in --type-map", code)
			}
			opts.UserTypeValues[label] = code
		}
	}
	return opts, nil
}

// formatFile runs one source file end to end: read, map, process, write
// the outputs and record the run.
func formatFile(ctx context.Context, st store.Store, path string, mapping mapper.Mapping, opts process.Options) (*process.Result, error) {
	start := time.Now()

	table, err := readSource(path)
	if err != nil {
		return nil, err
	}

	if mapping == nil {
		mapping = mapper.AutoMap(table.Columns)
	} else {
		// Presets are shared across the batch; never mutate the original.
		copied := make(mapper.Mapping, len(mapping))
		for k, v := range mapping {
			copied[k] = v
		}
		mapping = copied
	}
	detectUserTypeColumn(table, mapping)
	zap.L().Info("format: columns mapped",
		zap.String("file", path),
		zap.Int("mapped", len(mapping)),
		zap.Int("source_columns", len(table.Columns)),
	)

	rec, err := st.CreateRun(ctx, path)
	if err != nil {
		return nil, err
	}

	res := process.Run(table, mapping, opts)

	if res.NeedsUserTypeChoice {
		logUserTypeLabels(path, table, mapping)
	}

	if err := writeOutputs(path, rec.ID, res); err != nil {
		_ = st.CompleteRun(ctx, rec.ID, model.RunStatusFailed, res.Stats, len(res.Errors), len(res.Warnings))
		return nil, err
	}

	status := model.RunStatusComplete
	if res.NeedsUserTypeChoice {
		status = model.RunStatusNeedsChoice
	}
	if err := st.CompleteRun(ctx, rec.ID, status, res.Stats, len(res.Errors), len(res.Warnings)); err != nil {
		return nil, err
	}

	zap.L().Info("format: file complete",
		zap.String("file", path),
		zap.String("run_id", rec.ID),
		zap.Int("total_rows", res.Stats.TotalRows),
		zap.Int("valid_rows", res.Stats.ValidRows),
		zap.Int("corrected_fields", res.Stats.CorrectedFields),
		zap.Int("errors", len(res.Errors)),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func readSource(path string) (model.Table, error) {
	charset := formatCharset
	if charset == "" {
		charset = cfg.Format.Charset
	}
	return fetcher.Read(path,
		fetcher.CSVOptions{Charset: charset},
		fetcher.XLSXOptions{SheetName: formatSheet},
	)
}

// userTypeContentThreshold is the share of sampled values that must carry
// user-type vocabulary for a column to be taken as the type column.
const userTypeContentThreshold = 0.2

// detectUserTypeColumn locates the user-type column by content when no
// header matched, and adds it to the mapping in place.
func detectUserTypeColumn(table model.Table, mapping mapper.Mapping) {
	field := schema.Fields[schema.IdxUserType].Name
	if _, ok := mapping[field]; ok {
		return
	}

	used := make(map[string]bool, len(mapping))
	for _, src := range mapping {
		used[src] = true
	}

	best, bestScore := "", 0.0
	for i, col := range table.Columns {
		if used[col] {
			continue
		}
		values := make([]string, 0, len(table.Rows))
		for _, row := range table.Rows {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		if score := infer.ScoreUserTypeColumn(values); score > bestScore {
			best, bestScore = col, score
		}
	}
	if bestScore >= userTypeContentThreshold {
		mapping[field] = best
		zap.L().Info("format: user-type column detected by content",
			zap.String("column", best),
			zap.Float64("score", bestScore),
		)
	}
}

// logUserTypeLabels surfaces the raw labels the operator still has to
// decide on, so the re-run command can be composed without opening the file.
func logUserTypeLabels(path string, table model.Table, mapping mapper.Mapping) {
	src, ok := mapping[schema.Fields[schema.IdxUserType].Name]
	if !ok {
		return
	}
	col := -1
	for i, c := range table.Columns {
		if c == src {
			col = i
			break
		}
	}
	if col < 0 {
		return
	}

	values := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		if col < len(row) {
			values = append(values, row[col])
		}
	}
	if labels := infer.UserTypeLabels(values); len(labels) > 0 {
		zap.L().Warn("format: unmapped user-type labels",
			zap.String("file", path),
			zap.Strings("labels", labels),
		)
	}
}

// writeOutputs writes the formatted file(s), the HTML report and the
// diagnostics CSV next to the source (or into --output-dir).
func writeOutputs(path, runID string, res *process.Result) error {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := formatOutputDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	base := filepath.Join(dir, stem)

	if formatOutputFormat == "csv" || formatOutputFormat == "both" {
		if err := export.WriteCSV(base+"_formate.csv", res.Table, ';'); err != nil {
			return err
		}
	}
	if formatOutputFormat == "xlsx" || formatOutputFormat == "both" {
		if err := export.WriteXLSX(base+"_formate.xlsx", res.Table); err != nil {
			return err
		}
	}

	report := export.ReportData{
		RunID:       runID,
		SourceFile:  filepath.Base(path),
		GeneratedAt: time.Now(),
		Stats:       res.Stats,
		Errors:      res.Errors,
		Warnings:    res.Warnings,
	}
	if err := export.WriteReport(base+"_rapport.html", report); err != nil {
		return err
	}

	diags := export.Diagnostics(res.Errors, res.Warnings)
	if len(diags) == 0 {
		return nil
	}
	return export.WriteDiagnostics(base+"_diagnostics.csv", diags)
}
