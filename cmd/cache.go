package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the processed-domain cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry count and location",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cache.New(cfg.Cache.Path)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(c.Stats())
	},
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached domains with their lead IDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cache.New(cfg.Cache.Path)
		for _, domain := range c.Domains() {
			entry, _ := c.Entry(domain)
			fmt.Printf("%s\t%s\t%s\n", domain, entry.LeadID,
				entry.ProcessedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var cacheRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Remove a domain from the cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cache.New(cfg.Cache.Path)
		if !c.Remove(args[0]) {
			return fmt.Errorf("domain %q not in cache", cache.Normalize(args[0]))
		}
		fmt.Printf("removed %s\n", cache.Normalize(args[0]))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cache.New(cfg.Cache.Path)
		count := c.Stats().Count
		c.Clear()
		fmt.Printf("cleared %d entries\n", count)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheListCmd, cacheRemoveCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
