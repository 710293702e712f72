package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retshidi-radebe/bzfitness/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage BZ Fitness configuration",
		Long:  "Initialize a default configuration file or display the current effective configuration.",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// ---------- config init ----------

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default " + config.FileName + " configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if cfgFile != "" {
				path = cfgFile
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Set auth.session_secret and auth.admin_password_hash, then run 'bzfitness serve'.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")

	return cmd
}

// ---------- config show ----------

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current effective configuration",
		Long:  "Print the resolved configuration as YAML. Secrets are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if file := vcfg.ConfigFileUsed(); file != "" {
				fmt.Fprintf(out, "# Config file: %s\n", file)
			} else {
				fmt.Fprintln(out, "# Config file: (none found, using defaults and environment)")
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			data, err := settings.Redacted().YAML()
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}
