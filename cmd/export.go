package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fpl-auction/invoice-cli/internal/export"
	"github.com/fpl-auction/invoice-cli/internal/store"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export processed invoice records to a report file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "export: open store")
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		records, err := st.ListRecords(ctx, store.RecordFilter{})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			zap.L().Warn("no records to export")
			return nil
		}
		export.SortRecords(records)

		output := exportOutput
		if output == "" {
			output = cfg.Export.Output
		}
		format := exportFormat
		if format == "" {
			format = cfg.Export.Format
		}
		if format == "" {
			format = strings.TrimPrefix(filepath.Ext(output), ".")
		}

		switch format {
		case "xlsx":
			err = export.WriteXLSX(records, output)
		case "csv":
			err = export.WriteCSV(records, output)
		default:
			return eris.Errorf("export: unknown format %q", format)
		}
		if err != nil {
			return err
		}

		s := export.Summarize(records)
		zap.L().Info("report written",
			zap.String("output", output),
			zap.String("format", format),
			zap.Int("records", s.Total),
			zap.Int("high_confidence", s.HighCount),
			zap.String("total_amount", export.FormatAmount(s.TotalAmount)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "report format: xlsx or csv")
	rootCmd.AddCommand(exportCmd)
}
