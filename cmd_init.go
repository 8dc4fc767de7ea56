package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prodpick/internal/config"
)

func newInitCmd(opts *options) *cobra.Command {
	var (
		watch bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file from the current flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService(opts.configPath)
			if !force {
				if _, err := os.Stat(opts.configPath); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", opts.configPath)
				}
			}

			cfg := config.DefaultConfig()
			cfg.Catalog = opts.catalog
			if opts.locale != "" {
				cfg.Locale = opts.locale
			}
			if opts.single {
				cfg.SelectMode = config.SelectModeSingle
			}
			cfg.Watch = watch

			if err := svc.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the catalog when it changes")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
