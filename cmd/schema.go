package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// schemaCmd verifies the local store tables against the declared schemas.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Verify the local store schema",
	Long:  `Migrates the local store and reports any declared column missing from its table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := newEnv(ctx)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		reports, err := rt.store.VerifySchema(ctx)
		if err != nil {
			return err
		}

		drift := 0
		for _, r := range reports {
			if r.OK() {
				rt.logger.Info("Table ok", zap.String("table", r.Table))
				continue
			}
			drift++
			rt.logger.Warn("Table incomplete", zap.String("table", r.Table), zap.Strings("missing", r.Missing))
		}
		if drift > 0 {
			return fmt.Errorf("%d table(s) do not match their schema", drift)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(schemaCmd)
}
