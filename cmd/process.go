package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/export"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
)

var (
	processSegment        string
	processForce          bool
	processSkipValidation bool
	processExport         bool
	processOut            string
)

var processCmd = &cobra.Command{
	Use:   "process <url> [url...]",
	Short: "Process one or more candidate store URLs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}

		leads, summary := p.ProcessURLs(cmd.Context(), args, pipeline.Options{
			Force:          processForce,
			SkipValidation: processSkipValidation,
			Segment:        model.Segment(processSegment),
			Source:         "manual",
		})

		return finishRun(leads, summary, processExport, processOut)
	},
}

func init() {
	processCmd.Flags().StringVar(&processSegment, "segment", "", "business segment (e-pharmacy, sunglasses, eyewear)")
	processCmd.Flags().BoolVar(&processForce, "force", false, "reprocess URLs already in the dedup cache")
	processCmd.Flags().BoolVar(&processSkipValidation, "skip-validation", false, "skip the product-catalog check")
	processCmd.Flags().BoolVar(&processExport, "export", false, "also write the xlsx workbook")
	processCmd.Flags().StringVar(&processOut, "out", "", "output directory (default from config)")
	rootCmd.AddCommand(processCmd)
}

// finishRun saves the batch JSON, optionally exports the workbook, and
// prints the run summary.
func finishRun(leads []*model.Lead, summary pipeline.Summary, doExport bool, outDir string) error {
	if outDir == "" {
		outDir = cfg.Export.OutputDir
	}

	jsonPath, err := pipeline.SaveJSON(leads, outDir)
	if err != nil {
		return err
	}

	if doExport {
		wb := export.NewWorkbook(cfg.Export.WorkbookPath)
		if err := wb.ExportLeads(leads); err != nil {
			return eris.Wrap(err, "export workbook")
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		pipeline.Summary
		Output string `json:"output"`
	}{Summary: summary, Output: jsonPath})
}
