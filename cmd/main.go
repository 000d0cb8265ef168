package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vehicle-expense-control/internal/api"
	"vehicle-expense-control/internal/archive"
	"vehicle-expense-control/internal/kv"
	"vehicle-expense-control/internal/models"
	"vehicle-expense-control/internal/query"
	"vehicle-expense-control/internal/store"
)

var (
	dbPath    string
	db        *kv.Store
	fuelStore *store.FuelStore
	washStore *store.WashStore
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vehicle-expense-control",
		Short: "Vehicle Expense Control - fleet fuel and wash expense tracking",
		Long: `A CLI tool for logging fleet vehicle expenses (fuel fill-ups and car-wash
services), with durable local storage, filterable listings, summary
reports, JSON import/export and a REST API.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "vehicle_expenses.db", "Path to the local database")

	// Add commands
	rootCmd.AddCommand(serverCmd())
	rootCmd.AddCommand(fuelCmd())
	rootCmd.AddCommand(washCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initStores opens the database and loads both record stores
func initStores() error {
	var err error
	db, err = kv.Open(dbPath)
	if err != nil {
		return err
	}
	fuelStore = store.NewFuelStore(db)
	washStore = store.NewWashStore(db)
	return nil
}

// serverCmd starts the REST API server
func serverCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			server := api.NewServer(fuelStore, washStore)
			addr := fmt.Sprintf(":%d", port)

			fmt.Printf("🚗 Vehicle Expense Control API Server\n")
			fmt.Printf("   Listening on http://localhost%s\n", addr)
			fmt.Printf("   Database: %s\n\n", dbPath)
			fmt.Println("Available endpoints:")
			fmt.Println("  GET    /health")
			fmt.Println("  GET    /api/v1/fuel")
			fmt.Println("  POST   /api/v1/fuel")
			fmt.Println("  DELETE /api/v1/fuel/{id}")
			fmt.Println("  GET    /api/v1/fuel/summary")
			fmt.Println("  GET    /api/v1/wash")
			fmt.Println("  POST   /api/v1/wash")
			fmt.Println("  DELETE /api/v1/wash/{id}")
			fmt.Println("  GET    /api/v1/wash/summary")
			fmt.Println("  GET    /api/v1/export")
			fmt.Println("  POST   /api/v1/import")
			fmt.Println("  GET    /api/v1/stats")
			fmt.Println()

			return http.ListenAndServe(addr, server.Router())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Server port")
	return cmd
}

// fuelCmd manages fuel fill-up records
func fuelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fuel",
		Short: "Fuel record commands",
	}

	var draft models.FuelDraft
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a fuel fill-up record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			rec, err := fuelStore.Add(draft)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Added fuel record %s\n", rec.ID)
			fmt.Printf("  %s %s | %s | %.2f L x %.2f = %.2f\n",
				rec.Date, rec.Time, rec.Plate, rec.QuantityLiters, rec.PricePerLiter, rec.TotalPrice)
			return nil
		},
	}
	addCmd.Flags().StringVar(&draft.Date, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	addCmd.Flags().StringVar(&draft.Time, "time", "", "Time (HH:MM, defaults to now)")
	addCmd.Flags().StringVar(&draft.Plate, "plate", "", "Vehicle plate (required)")
	addCmd.Flags().StringVar(&draft.Model, "model", "", "Vehicle model")
	addCmd.Flags().StringVar(&draft.Driver, "driver", "", "Driver name")
	addCmd.Flags().StringVar(&draft.FuelType, "type", "", "Fuel type (Gasoline, Ethanol, Diesel, CNG)")
	addCmd.Flags().StringVar(&draft.QuantityLiters, "quantity", "", "Quantity in liters (required)")
	addCmd.Flags().StringVar(&draft.PricePerLiter, "price", "", "Price per liter (required)")
	addCmd.Flags().StringVar(&draft.OdometerKm, "odometer", "", "Odometer reading in km")
	addCmd.Flags().StringVar(&draft.Notes, "notes", "", "Free-text notes")

	var filter string
	var outputFormat string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List fuel records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			records := query.FilterFuel(fuelStore.List(), filter)

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				enc.Encode(records)
			default:
				if len(records) == 0 {
					fmt.Println("No fuel records found.")
					return nil
				}
				fmt.Printf("%-36s %-10s %-5s %-10s %-12s %-10s %8s %8s %9s\n",
					"ID", "Date", "Time", "Plate", "Driver", "Fuel", "Liters", "Price", "Total")
				for _, r := range records {
					fmt.Printf("%-36s %-10s %-5s %-10s %-12s %-10s %8.2f %8.2f %9.2f\n",
						r.ID, r.Date, r.Time, r.Plate, r.Driver, r.FuelType,
						r.QuantityLiters, r.PricePerLiter, r.TotalPrice)
				}
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&filter, "filter", "f", "", "Filter by plate, model or driver")
	listCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json)")

	removeCmd := &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a fuel record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			if fuelStore.Remove(args[0]) {
				fmt.Printf("✓ Removed fuel record %s\n", args[0])
			} else {
				fmt.Printf("No fuel record with id %s\n", args[0])
			}
			return nil
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show fuel spending summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			s := query.SummarizeFuel(fuelStore.List())
			fmt.Println("⛽ Fuel Summary")
			fmt.Println("===============")
			fmt.Printf("  Records:          %d\n", s.Count)
			fmt.Printf("  Total Spend:      %.2f\n", s.TotalSpend)
			fmt.Printf("  Total Liters:     %.2f\n", s.TotalLiters)
			fmt.Printf("  Avg Price/Liter:  %.2f\n", s.AveragePricePerLiter)
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd, summaryCmd)
	return cmd
}

// washCmd manages car-wash records
func washCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wash",
		Short: "Car-wash record commands",
	}

	var draft models.WashDraft
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a car-wash record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			rec, err := washStore.Add(draft)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Added wash record %s\n", rec.ID)
			fmt.Printf("  %s %s | %s | %s | %.2f (%s)\n",
				rec.Date, rec.Time, rec.Plate, rec.WashType, rec.Price, rec.Status)
			return nil
		},
	}
	addCmd.Flags().StringVar(&draft.Date, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	addCmd.Flags().StringVar(&draft.Time, "time", "", "Time (HH:MM, defaults to now)")
	addCmd.Flags().StringVar(&draft.Plate, "plate", "", "Vehicle plate (required)")
	addCmd.Flags().StringVar(&draft.Model, "model", "", "Vehicle model")
	addCmd.Flags().StringVar(&draft.Customer, "customer", "", "Customer name")
	addCmd.Flags().StringVar(&draft.WashType, "type", "", "Wash type (Basic, Full, Waxing, Detailing)")
	addCmd.Flags().StringVar(&draft.Price, "price", "", "Service price (required)")
	addCmd.Flags().StringVar(&draft.Status, "status", "", "Status (Scheduled, InProgress, Completed, Cancelled)")
	addCmd.Flags().StringVar(&draft.Notes, "notes", "", "Free-text notes")

	var filter string
	var outputFormat string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List wash records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			records := query.FilterWash(washStore.List(), filter)

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				enc.Encode(records)
			default:
				if len(records) == 0 {
					fmt.Println("No wash records found.")
					return nil
				}
				fmt.Printf("%-36s %-10s %-5s %-10s %-12s %-10s %8s %-11s\n",
					"ID", "Date", "Time", "Plate", "Customer", "Type", "Price", "Status")
				for _, r := range records {
					fmt.Printf("%-36s %-10s %-5s %-10s %-12s %-10s %8.2f %-11s\n",
						r.ID, r.Date, r.Time, r.Plate, r.Customer, r.WashType, r.Price, r.Status)
				}
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&filter, "filter", "f", "", "Filter by plate, model or customer")
	listCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json)")

	removeCmd := &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a wash record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			if washStore.Remove(args[0]) {
				fmt.Printf("✓ Removed wash record %s\n", args[0])
			} else {
				fmt.Printf("No wash record with id %s\n", args[0])
			}
			return nil
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show wash spending summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			s := query.SummarizeWash(washStore.List())
			fmt.Println("🧽 Wash Summary")
			fmt.Println("===============")
			fmt.Printf("  Records:      %d\n", s.Count)
			fmt.Printf("  Total Spend:  %.2f\n", s.TotalSpend)
			fmt.Printf("  Completed:    %d\n", s.CompletedCount)
			fmt.Printf("  Pending:      %d\n", s.PendingCount)
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd, summaryCmd)
	return cmd
}

// exportCmd writes both record lists to a portable JSON document
func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all records to a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			now := time.Now()
			if output == "" {
				output = archive.Filename(now)
			}

			doc := archive.Export(fuelStore.List(), washStore.List(), now)
			data, err := archive.Encode(doc)
			if err != nil {
				return fmt.Errorf("error encoding export: %w", err)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("error writing export file: %w", err)
			}

			fmt.Printf("✓ Exported %d fuel and %d wash records to %s\n",
				len(*doc.FuelRecords), len(*doc.WashRecords), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to dated name)")
	return cmd
}

// importCmd replaces store contents from a JSON document
func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import records from a JSON document (wholesale replace)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading import file: %w", err)
			}

			doc, err := archive.Parse(data)
			if err != nil {
				return err
			}

			if err := archive.Apply(doc, fuelStore, washStore); err != nil {
				if errors.Is(err, archive.ErrNoRecognizedLists) {
					fmt.Println("⚠️  Nothing imported: document has no recognized record lists.")
					return nil
				}
				return err
			}

			fmt.Printf("✓ Imported: %d fuel records, %d wash records\n",
				len(fuelStore.List()), len(washStore.List()))
			return nil
		},
	}
}

// statsCmd shows both summaries
func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show overall statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initStores(); err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer db.Close()

			fs := query.SummarizeFuel(fuelStore.List())
			ws := query.SummarizeWash(washStore.List())

			fmt.Println("📊 Vehicle Expense Control Statistics")
			fmt.Println("=====================================")
			fmt.Printf("  Fuel Records:     %d (%.2f spent, %.2f L)\n", fs.Count, fs.TotalSpend, fs.TotalLiters)
			fmt.Printf("  Wash Records:     %d (%.2f spent)\n", ws.Count, ws.TotalSpend)
			fmt.Printf("  Total Spend:      %.2f\n", fs.TotalSpend+ws.TotalSpend)
			fmt.Printf("  Database:         %s\n", dbPath)
			return nil
		},
	}
}
