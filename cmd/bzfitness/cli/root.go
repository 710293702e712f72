package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retshidi-radebe/bzfitness/internal/config"
)

var (
	cfgFile    string
	appVersion string // set in Execute, reported by serve and mcp

	// vcfg is rebuilt by newRootCmd so each command tree starts clean.
	vcfg = viper.New()
)

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	appVersion = version
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	vcfg = viper.New()

	cmd := &cobra.Command{
		Use:   "bzfitness",
		Short: "BZ Fitness gym administration server",
		Long: `BZ Fitness: the gym's admin backend in one binary.

Serves the public schedule and contact form, and the session-protected admin
API for members, attendance, payments, the class schedule, enquiries and
progress tracking.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bzfitness.yaml)")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory for the SQLite database (default: ~/.bzfitness)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newOpenAPICmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newDBCmd())

	return cmd
}

func initConfig() {
	config.SetDefaults(vcfg)
	if cfgFile != "" {
		vcfg.SetConfigFile(cfgFile)
	} else {
		vcfg.SetConfigName("bzfitness")
		vcfg.SetConfigType("yaml")
		vcfg.AddConfigPath(".")
		vcfg.AddConfigPath("$HOME/.bzfitness")
	}

	config.BindEnv(vcfg)
	vcfg.ReadInConfig() // Ignore error - config file is optional
}
