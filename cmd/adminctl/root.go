package main

import (
	"fmt"

	"github.com/jrsteele09/go-admin-client/internal/config"
	"github.com/jrsteele09/go-admin-client/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cliConfig lets command line flags override the environment
type cliConfig struct {
	config.Config

	coreURL        string
	settingURL     string
	financeURL     string
	store          string
	credentialFile string
	logLevel       string
}

func (c *cliConfig) GetCoreURL() string {
	return override(c.coreURL, c.Config.GetCoreURL())
}

func (c *cliConfig) GetSettingURL() string {
	return override(c.settingURL, override(c.coreURL, c.Config.GetSettingURL()))
}

func (c *cliConfig) GetFinanceURL() string {
	return override(c.financeURL, c.Config.GetFinanceURL())
}

func (c *cliConfig) GetCredentialStore() string {
	return override(c.store, c.Config.GetCredentialStore())
}

func (c *cliConfig) GetCredentialFile() string {
	return override(c.credentialFile, c.Config.GetCredentialFile())
}

func (c *cliConfig) GetLogLevel() string {
	return override(c.logLevel, c.Config.GetLogLevel())
}

func override(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return fallback
}

func newRootCommand() *cobra.Command {
	cfg := &cliConfig{Config: config.New()}

	cmd := &cobra.Command{
		Use:           "adminctl",
		Short:         "Command line client for the admin dashboard backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("log-level") {
				logging.SetupWriter(cfg, cmd.ErrOrStderr())
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), appBanner(cfg.GetAppName())); err != nil {
				return err
			}
			return cmd.Help()
		},
	}
	addGlobalFlags(cmd.PersistentFlags(), cfg)

	cmd.AddCommand(
		newLoginCommand(cfg),
		newLogoutCommand(cfg),
		newStatusCommand(cfg),
		newProfileCommand(cfg),
		newCoreCommand(cfg),
		newConfigKeyCommand(cfg),
		newCashBalanceCommand(cfg),
		newCashHistoryCommand(cfg),
		newCashUpdateCommand(cfg),
		newProbeCommand(cfg),
		newVersionCommand(cfg),
	)
	return cmd
}

func addGlobalFlags(flags *pflag.FlagSet, cfg *cliConfig) {
	flags.StringVar(&cfg.coreURL, "backend-url", "", "core backend URL (env BACKEND_URL)")
	flags.StringVar(&cfg.settingURL, "setting-url", "", "setting backend URL (env BACKEND_URL_SETTING)")
	flags.StringVar(&cfg.financeURL, "finance-url", "", "finance backend URL (env BACKEND_URL_FINANCE)")
	flags.StringVar(&cfg.store, "store", "", "credential store: file, redis or memory (env CREDENTIAL_STORE)")
	flags.StringVar(&cfg.credentialFile, "credential-file", "", "credential file for --store file (env CREDENTIAL_FILE)")
	flags.StringVar(&cfg.logLevel, "log-level", "", "log level (env LOG_LEVEL)")
}
