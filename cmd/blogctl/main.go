package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/redmonkez12/go-blog-api/internal/config"
	"github.com/redmonkez12/go-blog-api/internal/database"
	"github.com/redmonkez12/go-blog-api/internal/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "blogctl",
		Short:        "Operator tooling for the blog API",
		Long:         "Run database migrations and account maintenance against the configured blog database.",
		SilenceUsage: true,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}

	for _, sub := range []struct {
		use, short string
	}{
		{"up", "Apply all pending migrations"},
		{"down", "Roll back the most recent migration"},
		{"status", "Print the state of every migration"},
	} {
		command := sub.use
		migrateCmd.AddCommand(&cobra.Command{
			Use:   command,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd.Context(), command)
			},
		})
	}

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Account maintenance",
	}

	purgeCmd := &cobra.Command{
		Use:   "purge <user-id>",
		Short: "Permanently delete an account and all of its blogs",
		Args:  cobra.ExactArgs(1),
		RunE:  runPurge,
	}
	purgeCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	usersCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(migrateCmd, usersCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runMigrate(ctx context.Context, command string) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.Driver == "sqlite" {
		fmt.Println("SQLite schema is created on startup, nothing to migrate.")
		return nil
	}

	db, err := database.Open(ctx, *cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.Migrate(ctx, db.DB, command)
}

func runPurge(cmd *cobra.Command, args []string) error {
	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", args[0], err)
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		fmt.Printf("This will permanently delete user %s and every blog they own.\n", userID)
		fmt.Print("Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := cmd.Context()
	db, err := database.Open(ctx, *cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := user.NewRepository(db).Delete(ctx, userID); err != nil {
		return err
	}

	fmt.Printf("User %s deleted.\n", userID)
	return nil
}
