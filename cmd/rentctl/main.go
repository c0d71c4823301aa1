// Command rentctl runs lease engine operations from the shell.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/segyhp/rent-engine/internal/app"
	"github.com/segyhp/rent-engine/internal/config"
	"github.com/segyhp/rent-engine/internal/domain"
	"github.com/segyhp/rent-engine/internal/logger"
	"github.com/segyhp/rent-engine/internal/schedule"
	"github.com/segyhp/rent-engine/internal/status"
)

const dateLayout = "2006-01-02"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rentctl",
		Short:         "Lease and supply payment status tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		paymentsCountCmd(),
		classifyContractCmd(),
		expireContractsCmd(),
		graceDaysCmd(),
	)
	return cmd
}

func paymentsCountCmd() *cobra.Command {
	var (
		duration  int
		frequency string
	)

	cmd := &cobra.Command{
		Use:   "payments-count",
		Short: "Number of installments for a duration and frequency",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := domain.PaymentFrequency(frequency)
			count, err := schedule.CalculatePaymentsCount(duration, f)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"duration_months":   duration,
				"payment_frequency": f,
				"payments_count":    count,
				"evenly_divisible":  schedule.IsValidDurationForFrequency(duration, f),
			})
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 12, "Contract duration in months")
	cmd.Flags().StringVar(&frequency, "frequency", string(domain.FrequencyMonthly), "monthly, quarterly, semi_annually or annually")
	return cmd
}

func classifyContractCmd() *cobra.Command {
	var (
		id        string
		kind      string
		stored    string
		start     string
		end       string
		duration  int
		asOf      string
		window    int
		locale    string
		frequency string
	)

	cmd := &cobra.Command{
		Use:   "classify-contract",
		Short: "Display status of a contract, from flags or from the database with --id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id != "" {
				contractID, err := uuid.Parse(id)
				if err != nil {
					return fmt.Errorf("invalid --id: %w", err)
				}
				return withApp(cmd.Context(), func(a *app.App) error {
					view, err := a.Lease.GetContractStatus(cmd.Context(), contractID, locale)
					if err != nil {
						return err
					}
					return writeJSON(cmd.OutOrStdout(), view)
				})
			}

			now := time.Now()
			if asOf != "" {
				parsed, err := time.Parse(dateLayout, asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
				now = parsed
			}

			contractKind, err := domain.ParseContractKind(kind)
			if err != nil {
				return err
			}
			contract := &domain.Contract{
				ContractNumber:   "cli",
				Kind:             contractKind,
				Status:           domain.ContractStatus(stored),
				DurationMonths:   duration,
				PaymentFrequency: domain.PaymentFrequency(frequency),
			}
			if contract.StartDate, err = optionalDate(start, "--start"); err != nil {
				return err
			}
			if contract.EndDate, err = optionalDate(end, "--end"); err != nil {
				return err
			}

			view, err := status.DescribeContract(contract, now, window, locale)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Classify a stored contract by ID")
	cmd.Flags().StringVar(&kind, "kind", string(domain.ContractKindRental), "rental or supply")
	cmd.Flags().StringVar(&stored, "status", string(domain.ContractStatusActive), "Stored contract status")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD); derived from --duration when empty")
	cmd.Flags().IntVar(&duration, "duration", 12, "Duration in months")
	cmd.Flags().StringVar(&frequency, "frequency", string(domain.FrequencyMonthly), "Payment frequency")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Evaluation date (YYYY-MM-DD), default today")
	cmd.Flags().IntVar(&window, "window", status.DefaultExpiringSoonDays, "Expiring soon window in days")
	cmd.Flags().StringVar(&locale, "locale", "en", "Label locale (en, ar)")
	return cmd
}

func expireContractsCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "expire-contracts",
		Short: "Move active contracts past their end date to expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				when := time.Now().In(a.Config.Location())
				if asOf != "" {
					parsed, err := time.ParseInLocation(dateLayout, asOf, a.Config.Location())
					if err != nil {
						return fmt.Errorf("invalid --as-of: %w", err)
					}
					when = parsed
				}
				count, err := a.Lease.ExpireContracts(cmd.Context(), when)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]int{"expired": count})
			})
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Evaluation date (YYYY-MM-DD), default today")
	return cmd
}

func graceDaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grace-days",
		Short: "Read or change the collection grace period",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current grace period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				days, err := a.Settings.GraceDays(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), domain.GraceDaysRequest{GraceDays: days})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set DAYS",
		Short: "Store a new grace period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("DAYS must be an integer: %w", err)
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				if err := a.Settings.SetGraceDays(cmd.Context(), days); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), domain.GraceDaysRequest{GraceDays: days})
			})
		},
	})
	return cmd
}

// withApp connects to the configured stores for the duration of fn.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(os.Stderr, cfg.Server.Env, cfg.Logging.Level, "console")

	a, err := app.New(ctx, cfg, log, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func optionalDate(raw, flag string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flag, err)
	}
	return &t, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
