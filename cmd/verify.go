package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var verifySegment string

var verifyCmd = &cobra.Command{
	Use:   "verify <url> [url...]",
	Short: "Check whether URLs are storefronts on the target platform",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStorefrontClient()
		segment := model.Segment(verifySegment)

		type result struct {
			*model.Verification
			Category *model.CategoryValidation `json:"category_validation,omitempty"`
		}

		results := make([]result, 0, len(args))
		for _, rawURL := range args {
			verification := store.Verify(cmd.Context(), rawURL)

			r := result{Verification: verification}
			if verification.IsMatch && segment.RequiresCategoryValidation() {
				r.Category = store.ValidateCategory(cmd.Context(), verification.ResolvedURL)
			}
			results = append(results, r)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifySegment, "segment", "", "also run category validation for this segment")
	rootCmd.AddCommand(verifyCmd)
}
