package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
)

var (
	searchSegment        string
	searchMaxResults     int
	searchForce          bool
	searchSkipValidation bool
	searchExport         bool
	searchOut            string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Discover candidate stores for a segment and process them",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}

		leads, summary, err := p.SearchAndProcess(cmd.Context(),
			model.Segment(searchSegment), searchMaxResults, pipeline.Options{
				Force:          searchForce,
				SkipValidation: searchSkipValidation,
			})
		if err != nil {
			return err
		}

		return finishRun(leads, summary, searchExport, searchOut)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchSegment, "segment", "", "business segment to search (required)")
	searchCmd.Flags().IntVar(&searchMaxResults, "max-results", 20, "maximum candidates to process")
	searchCmd.Flags().BoolVar(&searchForce, "force", false, "reprocess URLs already in the dedup cache")
	searchCmd.Flags().BoolVar(&searchSkipValidation, "skip-validation", false, "skip the product-catalog check")
	searchCmd.Flags().BoolVar(&searchExport, "export", false, "also write the xlsx workbook")
	searchCmd.Flags().StringVar(&searchOut, "out", "", "output directory (default from config)")
	_ = searchCmd.MarkFlagRequired("segment")
	rootCmd.AddCommand(searchCmd)
}
