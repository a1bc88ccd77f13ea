package main

import (
	"context"
	"fmt"
	"ratingd/internal/presenters"
	"ratingd/internal/services"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := c.newApp(&c.flags)
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Run(cmd.Context())
		},
	}
}

// withService builds a service that asks its questions on the command's terminal.
func (c *cli) withService(cmd *cobra.Command, run func(ctx context.Context, svc services.PromptServiceInterface) error) error {
	presenter := presenters.NewTerminalPresenter(cmd.InOrStdin(), cmd.OutOrStdout())
	svc, cleanup, err := c.newService(&c.flags, presenter)
	if err != nil {
		return err
	}
	defer cleanup()
	return run(cmd.Context(), svc)
}

func recordUse(ctx context.Context, svc services.PromptServiceInterface) (services.CycleResult, error) {
	return svc.RecordUse(ctx)
}

func recordEvent(ctx context.Context, svc services.PromptServiceInterface) (services.CycleResult, error) {
	return svc.RecordPositiveEvent(ctx)
}

func newUsageCmd(c *cli, use, short string, record func(context.Context, services.PromptServiceInterface) (services.CycleResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc services.PromptServiceInterface) error {
				res, err := record(ctx, svc)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "eligible=%t outcome=%s\n", res.Eligible, res.Outcome)
				return nil
			})
		},
	}
}

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether a prompt is due without recording anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc services.PromptServiceInterface) error {
				ok, err := svc.Eligible(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "eligible=%t\n", ok)
				return nil
			})
		},
	}
}

func newPromptCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Run one prompt cycle now, ignoring the thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc services.PromptServiceInterface) error {
				outcome, err := svc.TriggerPromptFlow(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "outcome=%s\n", outcome)
				return nil
			})
		},
	}
}

func newReviewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Request the native review sheet directly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc services.PromptServiceInterface) error {
				if err := svc.RequestReview(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "review requested")
				return nil
			})
		},
	}
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the ledger as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc services.PromptServiceInterface) error {
				snap, err := svc.Snapshot(ctx)
				if err != nil {
					return err
				}
				out, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			})
		},
	}
}
