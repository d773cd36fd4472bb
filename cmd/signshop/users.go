package main

import (
	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage back office users",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the super admin role to an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := database.New(ctx, a.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			email := args[0]
			if err := services.NewUserService(db).PromoteToSuperAdmin(ctx, email); err != nil {
				return err
			}
			a.logger.Info("user promoted", zap.String("email", email))
			success(cmd.OutOrStdout(), "promoted %s to super admin", email)
			return nil
		},
	})
	return cmd
}
