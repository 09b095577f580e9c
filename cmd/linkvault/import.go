package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkvault/internal/app"
	"github.com/MrSnakeDoc/linkvault/internal/config"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/importer"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

type importFlags struct {
	email    string
	category string
}

func init() {
	flags := new(importFlags)

	cmd := &cobra.Command{
		Use:   "import [-e email] [-c category] bookmarks.yaml",
		Short: "Import a Homepage bookmarks.yaml into an account",
		Long: "Signs in with the account's email and the password read from " +
			"LINKVAULT_IMPORT_PASSWORD, then creates one link per bookmark.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, flags, args[0])
		},
	}
	cmd.Flags().StringVarP(&flags.email, "email", "e", "", "account email (required)")
	cmd.Flags().StringVarP(&flags.category, "category", "c", string(domain.CategoryOthers), "category for groups that name none")
	_ = cmd.MarkFlagRequired("email")

	rootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, flags *importFlags, path string) error {
	fallback, ok := domain.ParseCategory(flags.category)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCategory, flags.category)
	}

	password := os.Getenv("LINKVAULT_IMPORT_PASSWORD")
	if password == "" {
		return errors.New("LINKVAULT_IMPORT_PASSWORD is not set")
	}

	doc, err := importer.LoadFile(path)
	if err != nil {
		return err
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	if cfg.Backend == config.BackendMemory {
		log.Warn("importing into the in-memory backend; links vanish when this command exits")
	}

	svc, err := app.Open(cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := cmd.Context()
	grant, err := svc.Sessions.Login(ctx, flags.email, password)
	if err != nil {
		return err
	}
	defer svc.Sessions.Logout(ctx, grant.Token)

	res, err := svc.Importer.Import(ctx, &grant.Session, doc, fallback)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "imported %d links\n", res.Imported)
	for _, s := range res.Skipped {
		fmt.Fprintf(out, "skipped %s/%s: %s\n", s.Group, s.Name, s.Reason)
	}
	return nil
}
