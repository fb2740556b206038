package cmd

import (
	"os"

	"food-ordering/internal/data/seed"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalog and accounts",
	Long: `Replaces the dish catalog and registers the sample accounts whose phone
numbers are not taken yet. Uses the embedded catalog unless --file is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service.Seed(cmd.Context(), cat); err != nil {
			return err
		}
		cmd.Printf("Seeded %d dishes and %d accounts\n", len(cat.Dishes), len(cat.Users))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "catalog YAML file")
}

func loadCatalog() (*seed.Catalog, error) {
	if seedFile == "" {
		return seed.Load()
	}
	data, err := os.ReadFile(seedFile)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}
