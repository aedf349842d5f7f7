package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
)

var (
	pilotForce  bool
	pilotExport bool
	pilotOut    string
)

var pilotCmd = &cobra.Command{
	Use:   "pilot",
	Short: "Process the configured sample list",
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, err := config.LoadSamples(cfg.Pipeline.SamplesFile)
		if err != nil {
			return eris.Wrap(err, "load samples")
		}
		zap.L().Info("pilot: starting", zap.Int("samples", len(samples)))

		p, err := buildPipeline()
		if err != nil {
			return err
		}

		leads, summary := p.ProcessSamples(cmd.Context(), samples, pipeline.Options{
			Force: pilotForce,
		})

		return finishRun(leads, summary, pilotExport, pilotOut)
	},
}

func init() {
	pilotCmd.Flags().BoolVar(&pilotForce, "force", false, "reprocess URLs already in the dedup cache")
	pilotCmd.Flags().BoolVar(&pilotExport, "export", false, "also write the xlsx workbook")
	pilotCmd.Flags().StringVar(&pilotOut, "out", "", "output directory (default from config)")
	rootCmd.AddCommand(pilotCmd)
}
