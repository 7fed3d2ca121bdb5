package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/models"
)

// NewGenerateCmd creates the generate subcommand.
func NewGenerateCmd() *cobra.Command {
	var (
		outPath    string
		reportOnly bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Migrate and generate typed query helpers",
		Long: `Runs AutoMigrate for every model, prints a column mismatch report and
writes gorm/gen query helpers. With --report-only only the report is printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			gdb, err := database.Open(c, log.Logger)
			if err != nil {
				return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
			}
			db := database.New(gdb)
			defer db.Close()

			if reportOnly {
				mismatches, err := models.GenerateColumnMismatchReport(gdb, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if mismatches > 0 {
					return fmt.Errorf("%d columns not accounted for in models", mismatches)
				}
				return nil
			}
			return models.GenerateModels(gdb, outPath, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "./query", "output directory for generated query code")
	cmd.Flags().BoolVar(&reportOnly, "report-only", false, "only print the column mismatch report")

	return cmd
}
