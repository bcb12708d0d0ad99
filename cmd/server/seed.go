package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"herdsos/config"
	"herdsos/database"
	"herdsos/entities"
	cowRepoImp "herdsos/pkg/cow/repositoryImp"
	hospRepoImp "herdsos/pkg/hospital/repositoryImp"
	"herdsos/pkg/seed"
)

// NewSeedCmd creates the seed command.
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load hospitals and cows into the database",
		Long: `Seed inserts or updates the reference data. Hospitals are matched by name
and cows by code, so running it twice is safe.

Without files the built-in Bengaluru clinics and COW-1001..COW-1004 are used.

Examples:
  # Built-in data
  herdsos seed

  # Start from an empty database with data from spreadsheets
  herdsos seed --reset --hospitals hospitals.xlsx --cows cows.csv`,
		Args: cobra.NoArgs,
		RunE: runSeedCmd,
	}

	cmd.Flags().Bool("reset", false, "Drop and recreate all tables before seeding")
	cmd.Flags().String("hospitals", "", "CSV/XLSX file with hospitals (default SEED_HOSPITALS)")
	cmd.Flags().String("cows", "", "CSV/XLSX file with cows (default SEED_COWS)")

	return cmd
}

func runSeedCmd(cmd *cobra.Command, _ []string) error {
	reset, err := cmd.Flags().GetBool("reset")
	if err != nil {
		return err
	}
	hospitalsPath, err := cmd.Flags().GetString("hospitals")
	if err != nil {
		return err
	}
	cowsPath, err := cmd.Flags().GetString("cows")
	if err != nil {
		return err
	}

	cfg := config.Load()
	if hospitalsPath == "" {
		hospitalsPath = cfg.SeedHospitals
	}
	if cowsPath == "" {
		cowsPath = cfg.SeedCows
	}

	hs, cs, err := seedData(hospitalsPath, cowsPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	if reset {
		if err := database.Reset(db); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
		log.Printf("[seed] database %s reset", cfg.DBPath)
	}

	if err := seed.Apply(cmd.Context(), hospRepoImp.New(db), cowRepoImp.New(db), hs, cs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d hospital(s) and %d cow(s) into %s\n", len(hs), len(cs), cfg.DBPath)
	return nil
}

// seedData reads the given files, falling back to the built-in data for empty paths.
func seedData(hospitalsPath, cowsPath string) ([]entities.Hospital, []entities.Cow, error) {
	hs := seed.DefaultHospitals()
	cs := seed.DefaultCows()
	var err error
	if hospitalsPath != "" {
		if hs, err = seed.LoadHospitals(hospitalsPath); err != nil {
			return nil, nil, err
		}
	}
	if cowsPath != "" {
		if cs, err = seed.LoadCows(cowsPath); err != nil {
			return nil, nil, err
		}
	}
	return hs, cs, nil
}
