package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/cache"
	"github.com/voltride/voltdesk/internal/logger"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local snapshot cache",
	Long:  "Commands for the local SQLite snapshot cache, including TTL configuration.",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached snapshots and their age",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openCache()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open cache: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = c.Close() }()

		fmt.Printf("Cache: %s\n\n", c.Path())

		infos, err := c.Snapshots()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list snapshots: %v\n", err)
			os.Exit(1)
		}

		if len(infos) == 0 {
			fmt.Println("No snapshots stored")

			return
		}

		for _, info := range infos {
			ttl := c.TTL(info.Collection)
			state := "fresh"
			if info.Age > ttl {
				state = "stale"
			}

			fmt.Printf("  %-10s %4d items, %v old (%s, ttl %v)\n",
				info.Collection, info.Items, info.Age.Round(time.Second), state, ttl)
		}
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached snapshots",
	Long:  "Remove every stored snapshot. TTL settings are kept.",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openCache()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open cache: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = c.Close() }()

		if err := c.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to clear cache: %v\n", err)
			os.Exit(1)
		}

		logger.Log.Info("Cache cleared")
	},
}

var cacheTTLCmd = &cobra.Command{
	Use:   "ttl [collection] <duration>",
	Short: "Configure snapshot freshness windows",
	Long: `Set how long a snapshot is served before a fresh fetch is forced.
With one argument the global TTL is set; with two the TTL applies to one
collection (stations, vehicles, staff, reports).

Examples:
  voltdesk cache ttl 30m            # global TTL
  voltdesk cache ttl vehicles 5m    # vehicles only`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		collection := ""
		durationStr := args[0]

		if len(args) == 2 {
			collection = args[0]
			durationStr = args[1]

			if !validCollection(collection) {
				fmt.Fprintf(os.Stderr, "Unknown collection: %s. Valid: stations, vehicles, staff, reports\n", collection)
				os.Exit(1)
			}
		}

		duration, err := time.ParseDuration(durationStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid duration: %v. Use format like '30m' or '2h'\n", err)
			os.Exit(1)
		}

		c, err := openCache()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open cache: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = c.Close() }()

		if err := c.SetTTL(collection, duration); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set TTL: %v\n", err)
			os.Exit(1)
		}

		if collection == "" {
			logger.Log.Infof("Set global cache TTL to %v", duration)
		} else {
			logger.Log.Infof("Set %s cache TTL to %v", collection, duration)
		}
	},
}

func validCollection(name string) bool {
	switch name {
	case cache.CollectionStations, cache.CollectionVehicles, cache.CollectionStaff, cache.CollectionReports:
		return true
	default:
		return false
	}
}

func init() {
	rootCmd.AddCommand(cacheCmd)

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheTTLCmd)
}
