package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"proptrack/internal/config"
	"proptrack/internal/export"
	"proptrack/internal/ledger"
	"proptrack/internal/logger"
	"proptrack/internal/models"
	"proptrack/internal/repository"
	"proptrack/internal/store"
	"proptrack/internal/timeline"
)

// app bundles the wired collaborators for one command invocation.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	repo  *repository.SnapshotRepository
	store *store.Store
}

// openApp loads config, opens the local storage file and hydrates the
// store from the persisted blob. Persistence subscribes to snapshot
// replacement so every mutation is saved as a whole.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	repo, err := repository.Open(cfg.Storage.Path, log)
	if err != nil {
		return nil, err
	}

	snapshot, err := repo.Load()
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	st := store.New(log)
	st.Load(snapshot)
	st.OnReplace(func(s models.Snapshot) {
		if err := repo.Save(s); err != nil {
			log.Error("failed to persist snapshot", zap.Error(err))
		}
	})

	return &app{cfg: cfg, log: log, repo: repo, store: st}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	_ = a.repo.Close()
}

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Monthly collection summary and per-resident status",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetString("month")
			if month == "" {
				month = time.Now().Format("2006-01")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			state := a.store.Snapshot()
			sum := ledger.Summarize(state, month)

			fmt.Printf("Month:               %s\n", sum.Month)
			fmt.Printf("Total collected:     $%.2f\n", sum.TotalRevenue)
			fmt.Printf("Expected revenue:    $%.2f\n", sum.TotalExpectedRevenue)
			fmt.Printf("Expenses:            $%.2f\n", sum.TotalExpenses)
			fmt.Printf("Net profit:          $%.2f\n", sum.NetProfit)
			fmt.Printf("Collection progress: %.1f%%\n", sum.CollectionProgress)
			fmt.Printf("Active residents:    %d\n", sum.ActiveTenants)
			fmt.Printf("Vacant rooms:        %d\n", sum.VacantCount)

			if len(state.Tenants) > 0 {
				fmt.Println()
				fmt.Printf("%-24s %-10s %10s %10s\n", "Resident", "Status", "Collected", "Rent")
				for _, t := range state.ActiveTenants() {
					status, collected := ledger.MonthStatus(state, t.ID, month)
					fmt.Printf("%-24s %-10s %10.2f %10.2f\n", t.Name, status, collected, t.MonthlyRent)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("month", "", "Target month (YYYY-MM, default: current)")
	return cmd
}

func timelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Upcoming and recent portfolio events",
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, _ := cmd.Flags().GetInt("offset")

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			state := a.store.Snapshot()
			tl := timeline.Project(state, timeline.Options{
				MonthOffset: offset,
				PastDays:    a.cfg.Timeline.PastDays,
				FutureDays:  a.cfg.Timeline.FutureDays,
			})

			fmt.Printf("Window: %s .. %s\n",
				tl.WindowStart.Format("2006-01-02"),
				tl.WindowEnd.Format("2006-01-02"),
			)
			for _, m := range tl.Markers {
				house, _ := state.HouseByID(m.HouseID)
				fmt.Printf("%s  [%-6s]  %s\n", m.Date, m.Status, house.Address)
				for _, e := range m.Events {
					if e.Status != "" {
						fmt.Printf("    - %s (%s)\n", e.Label, e.Status)
					} else {
						fmt.Printf("    - %s\n", e.Label)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("offset", 0, "Shift the window by whole months")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the monthly rent ledger to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetString("month")
			out, _ := cmd.Flags().GetString("out")
			if month == "" {
				month = time.Now().Format("2006-01")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := export.WriteLedger(a.store.Snapshot(), month, out); err != nil {
				return err
			}
			fmt.Printf("Ledger for %s written to %s\n", month, out)
			return nil
		},
	}
	cmd.Flags().String("month", "", "Target month (YYYY-MM, default: current)")
	cmd.Flags().String("out", "ledger.xlsx", "Output file path")
	return cmd
}

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write the whole state to a JSON backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := repository.ExportJSON(a.store.Snapshot(), out); err != nil {
				return err
			}
			fmt.Printf("State written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().String("out", "proptrack-backup.json", "Output file path")
	return cmd
}

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the whole state from a JSON backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			snapshot, err := repository.ImportJSON(in)
			if err != nil {
				return err
			}
			if err := a.store.Update(func(models.Snapshot) (models.Snapshot, error) {
				return snapshot, nil
			}); err != nil {
				return err
			}
			fmt.Printf("State restored from %s\n", in)
			return nil
		},
	}
	cmd.Flags().String("in", "proptrack-backup.json", "Backup file path")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Update(func(models.Snapshot) (models.Snapshot, error) {
				return store.Seed(), nil
			}); err != nil {
				return err
			}
			fmt.Println("Demo dataset loaded")
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Permanently delete all houses, tenants, payments and records",
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return fmt.Errorf("refusing to reset without --yes; this cannot be undone")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Update(func(models.Snapshot) (models.Snapshot, error) {
				return models.Empty(), nil
			}); err != nil {
				return err
			}
			if err := a.repo.Reset(); err != nil {
				return err
			}
			fmt.Println("All data removed")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Confirm the destructive reset")
	return cmd
}
