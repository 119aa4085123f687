package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tailscan/internal/app"
	"tailscan/internal/entitlement"
	"tailscan/internal/tailnumber"
)

func newScanCmd(verbose *bool) *cobra.Command {
	var (
		payment string
		plan    string
	)
	cmd := &cobra.Command{
		Use:   "scan TAIL",
		Short: "Produce a forensic report for one aircraft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := setup(*verbose)
			a, err := app.Build(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			ent := entitlement.Entitlement{
				PaymentStatus: entitlement.ParsePaymentStatus(payment),
				Plan:          entitlement.ParsePlan(plan),
			}
			if !ent.Paid() {
				ent.Plan = entitlement.PlanNone
			}
			report, err := a.Reports.Scan(cmd.Context(), args[0], ent)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&payment, "payment", "unpaid", "Payment status: paid|unpaid")
	cmd.Flags().StringVar(&plan, "plan", "none", "Plan tier: none|basic|full")
	return cmd
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize MARK...",
		Short: "Print the canonical form of registration marks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				tail, err := tailnumber.Normalize(raw)
				if err != nil {
					return fmt.Errorf("%q: %w", raw, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", tail, tailnumber.CountryOf(tail), tailnumber.LookupKey(tail))
			}
			return nil
		},
	}
}
