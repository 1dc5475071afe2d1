package commands

import (
	"errors"

	"worknest_backend/internals/configs"
	database "worknest_backend/internals/databases"
	"worknest_backend/internals/seeds"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	var (
		filePath string
		hash     bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Provision admins, workers and GPS devices from a YAML fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configs.Load()
			if filePath == "" {
				filePath = cfg.SeedFile
			}
			if filePath == "" {
				return errors.New("no fixture: pass --file or set SEED_FILE")
			}

			st, _, err := database.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			return seeds.RunAllSeeds(cmd.Context(), st, filePath, hash)
		},
	}
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "fixture file (default $SEED_FILE)")
	cmd.Flags().BoolVar(&hash, "hash", false, "store admin passwords as bcrypt hashes")
	return cmd
}
