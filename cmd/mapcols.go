package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/import-formatter/internal/mapper"
	"github.com/sells-group/import-formatter/internal/model"
	"github.com/sells-group/import-formatter/internal/preset"
	"github.com/sells-group/import-formatter/internal/schema"
)

var mapSavePreset string

var mapCmd = &cobra.Command{
	Use:   "map <file>",
	Short: "Preview the automatic column mapping for a file",
	Long: `Reads the file's header, maps it onto the import template and prints
the result. Use --save to persist the mapping as a preset, then adjust it
by hand before formatting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := readSource(args[0])
		if err != nil {
			return err
		}

		mapping := mapper.AutoMap(table.Columns)
		printMapping(os.Stdout, mapping, table)

		if mapSavePreset != "" {
			if err := preset.Save(mapSavePreset, mapping); err != nil {
				return err
			}
			zap.L().Info("map: preset saved", zap.String("path", mapSavePreset))
		}
		return nil
	},
}

func init() {
	mapCmd.Flags().StringVar(&mapSavePreset, "save", "", "write the mapping to a preset file (json or yaml)")
	mapCmd.Flags().StringVar(&formatCharset, "charset", "", "source charset for CSV files (e.g. latin1)")
	mapCmd.Flags().StringVar(&formatSheet, "sheet", "", "worksheet name for XLSX files (default: first sheet)")
	rootCmd.AddCommand(mapCmd)
}

func printMapping(out io.Writer, mapping mapper.Mapping, table model.Table) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TEMPLATE FIELD\tSOURCE COLUMN")
	_, _ = fmt.Fprintln(w, "--------------\t-------------")
	for _, f := range schema.Fields {
		if src, ok := mapping[f.Name]; ok {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", f.Name, src)
		}
	}
	_ = w.Flush()

	used := make(map[string]bool, len(mapping))
	for _, src := range mapping {
		used[src] = true
	}
	var unmapped []string
	for _, c := range table.Columns {
		if !used[c] {
			unmapped = append(unmapped, c)
		}
	}
	if len(unmapped) > 0 {
		fmt.Fprintf(out, "\nUnmapped source columns: %d\n", len(unmapped))
		for _, c := range unmapped {
			fmt.Fprintf(out, "  - %s\n", c)
		}
	}
}
