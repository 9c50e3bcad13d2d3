package main

import (
	"fmt"

	"github.com/jrsteele09/go-admin-client/adminmodel"
	"github.com/spf13/cobra"
)

func newCoreCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "core",
		Short: "Show the organization's core setting",
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			core, err := a.setting.GetCoreSetting(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), core)
		}),
	}
}

func newConfigKeyCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "config-key",
		Short: "Show the third-party configuration keys",
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			keys, err := a.setting.GetConfigKeys(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), keys)
		}),
	}
}

func newCashBalanceCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "cash-balance",
		Short: "Show the current cash balance",
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			balance, err := a.finance.GetCashBalance(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", balance.Balance)
			return err
		}),
	}
}

func newCashHistoryCommand(cfg *cliConfig) *cobra.Command {
	var params adminmodel.CashBalanceHistoryParams
	cmd := &cobra.Command{
		Use:   "cash-history",
		Short: "List one page of the cash balance ledger",
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			page, err := a.finance.GetCashBalanceHistory(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		}),
	}
	cmd.Flags().IntVar(&params.Limit, "limit", adminmodel.DefaultHistoryLimit, "page size")
	cmd.Flags().StringVar(&params.Cursor, "cursor", "", "next_cursor of the previous page")
	return cmd
}

func newCashUpdateCommand(cfg *cliConfig) *cobra.Command {
	var (
		txType      string
		value       float64
		description string
	)
	cmd := &cobra.Command{
		Use:   "cash-update",
		Short: "Record a credit or debit on the cash balance",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch adminmodel.TransactionType(txType) {
			case adminmodel.Credit, adminmodel.Debit:
				return nil
			default:
				return fmt.Errorf("--type must be %q or %q", adminmodel.Credit, adminmodel.Debit)
			}
		},
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			req := adminmodel.NewCashBalanceUpdate(adminmodel.TransactionType(txType), value, description)
			balance, err := a.finance.UpdateCashBalance(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", balance.Balance)
			return err
		}),
	}
	cmd.Flags().StringVar(&txType, "type", string(adminmodel.Credit), "credit or debit")
	cmd.Flags().Float64Var(&value, "value", 0, "amount")
	cmd.Flags().StringVar(&description, "description", "", "ledger description")
	return cmd
}
