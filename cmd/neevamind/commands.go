package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"neevamind/internal/config"
	"neevamind/internal/db"
	"neevamind/internal/diary"
	"neevamind/internal/insight"
	"neevamind/internal/report"
)

// --- migrate ---

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		gdb, err := openDB(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
		return closeDB(gdb)
	},
}

// --- report ---

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the weekly report for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetUint64("user")
		if userID == 0 {
			return fmt.Errorf("--user is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loc, err := time.LoadLocation(cfg.ReportTimezone)
		if err != nil {
			return err
		}
		gdb, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer closeDB(gdb)

		rows, err := report.NewService(&diary.Store{DB: gdb}, loc).Weekly(cmd.Context(), userID)
		if err != nil {
			return err
		}
		return printReport(cmd.OutOrStdout(), rows)
	},
}

func printReport(w io.Writer, rows []report.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tMOOD\tMEMORY\tENTRIES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%d\n", r.Day, r.MoodScore, r.MemoryScore, r.EntryCount)
	}
	return tw.Flush()
}

// --- insights ---

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Work with generated insights",
}

var insightsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store insights for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetUint64("user")
		if userID == 0 {
			return fmt.Errorf("--user is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		gdb, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer closeDB(gdb)

		svc := insight.NewService(&diary.Store{DB: gdb}, &insight.GormStore{DB: gdb},
			newCompleter(cfg),
			insight.Options{MaxTokens: cfg.TextGen.MaxTokens, Temperature: cfg.TextGen.Temperature})

		saved, err := svc.Generate(cmd.Context(), userID)
		if err != nil {
			return err
		}
		return printInsights(cmd.OutOrStdout(), saved)
	},
}

func printInsights(w io.Writer, in []insight.Insight) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCONFIDENCE\tINSIGHT")
	for _, i := range in {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", i.Category, i.Confidence, i.Text)
	}
	return tw.Flush()
}

func init() {
	reportCmd.Flags().Uint64("user", 0, "user id")
	insightsGenerateCmd.Flags().Uint64("user", 0, "user id")
	insightsCmd.AddCommand(insightsGenerateCmd)
}

var migrateSchema = db.AutoMigrateAndIndexes

func openDB(cfg config.Config) (*gorm.DB, error) {
	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}
	if err := migrateSchema(gdb); err != nil {
		_ = closeDB(gdb)
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return gdb, nil
}

func closeDB(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing database: %v\n", err)
		return err
	}
	return nil
}
