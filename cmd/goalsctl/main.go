package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/backup"
	"github.com/AnasSayed27/GoalsApp/internal/config"
	"github.com/AnasSayed27/GoalsApp/internal/storage"
	"github.com/AnasSayed27/GoalsApp/internal/streak"
)

func main() {
	root := &cobra.Command{
		Use:           "goalsctl",
		Short:         "Manage GoalsApp data from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(exportCmd(), importCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore builds the configured backend with a quiet logger so command
// output stays clean.
func openStore() (storage.Store, error) {
	cfg := config.Load()
	return storage.NewStore(cfg, internal.NopLogger())
}

func exportCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a timestamped backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			svc := backup.NewService(store, store, store, internal.NopLogger(), nil)
			path, err := svc.ExportToFile(context.Background(), outDir)
			if err != nil {
				return err
			}
			fmt.Println("Backup written to", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the backup into")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore data from a backup file, overwriting current data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			svc := backup.NewService(store, store, store, internal.NopLogger(), nil)
			if err := svc.ImportFile(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Backup restored from", args[0])
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	var dateStr string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the streak and discipline summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if dateStr != "" {
				d, err := internal.ParseDate(dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				now = d.Time()
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			hours, err := store.LoadHours(context.Background())
			if err != nil {
				return err
			}
			stats := streak.Compute(hours, now)

			fmt.Printf("%s %s (score %d)\n", stats.Level.Icon, stats.Level.Title, stats.Level.Score)
			fmt.Printf("Current streak:  %d days\n", stats.CurrentStreak)
			fmt.Printf("Longest streak:  %d days\n", stats.LongestStreak)
			fmt.Printf("Days won:        %d\n", stats.TotalDaysWon)
			fmt.Printf("Total hours:     %.1f\n", stats.TotalHours)
			fmt.Printf("This week:       %d wins, %.1fh (avg %.2fh/day)\n", stats.ThisWeekScore, stats.ThisWeekHours, stats.ThisWeekAvg)
			fmt.Printf("Monthly wins:    %d (trend %+.0f%%)\n", stats.MonthlyScore, stats.TrendPercentage)
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "evaluate stats as of this date (YYYY-MM-DD)")
	return cmd
}
