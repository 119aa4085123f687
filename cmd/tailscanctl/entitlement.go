package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tailscan/internal/entitlement"
	"tailscan/internal/platform/config"
	"tailscan/internal/tailnumber"
)

func newEntitlementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entitlement",
		Short: "Manage entitlement tokens",
	}

	var (
		plan string
		tail string
		ttl  time.Duration
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a paid entitlement token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromEnv()
			ent := entitlement.Entitlement{
				PaymentStatus: entitlement.StatusPaid,
				Plan:          entitlement.ParsePlan(plan),
			}
			if tail != "" {
				normalized, err := tailnumber.Normalize(tail)
				if err != nil {
					return fmt.Errorf("%q: %w", tail, err)
				}
				ent.TailNumber = normalized
			}
			tokens := entitlement.NewTokenService(cfg.Entitlement.SigningKey, cfg.Entitlement.Issuer, cfg.Entitlement.Audience)
			token, err := tokens.Issue(ent, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().StringVar(&plan, "plan", "basic", "Plan tier: basic|full")
	issue.Flags().StringVar(&tail, "tail", "", "Scope the token to one aircraft")
	issue.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	cmd.AddCommand(issue)
	return cmd
}
