// Command farmcrm is an operator CLI over the farmer CRM data-access
// layer. Every DAL operation is reachable as a subcommand; results are
// printed as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/avaagri/farmcrm/internal/config"
	"github.com/avaagri/farmcrm/internal/database"
	"github.com/avaagri/farmcrm/internal/logger"
	"github.com/avaagri/farmcrm/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "farmcrm",
		Short:         "Farmer CRM data-access layer CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newHealthCmd(),
		newFarmersCmd(),
		newFarmerCmd(),
		newFieldsCmd(),
		newConversationsCmd(),
		newQueueCmd(),
		newCropCmd(),
		newDiagCmd(),
	)

	return root
}

// withStore loads config, builds the logger and pool, and hands a
// ready Store to fn, closing the pool afterwards.
func withStore(ctx context.Context, fn func(context.Context, *store.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, store.New(db.Pool, log))
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				healthy := s.HealthCheck(ctx)
				if err := printJSON(map[string]bool{"healthy": healthy}); err != nil {
					return err
				}
				if !healthy {
					return fmt.Errorf("database is unreachable")
				}
				return nil
			})
		},
	}
}

func newFarmersCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "farmers",
		Short: "List farmers ordered by farm name",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				farmers, err := s.ListFarmers(ctx, limit)
				if err != nil {
					return err
				}
				return printJSON(farmers)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", store.DefaultFarmerLimit, "maximum farmers to return")
	return cmd
}

func newFarmerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "farmer <id>",
		Short: "Show one farmer by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				farmer, err := s.GetFarmer(ctx, id)
				if err != nil {
					return err
				}
				if farmer == nil {
					return fmt.Errorf("farmer %d not found", id)
				}
				return printJSON(farmer)
			})
		},
	}
}

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields <farmer-id>",
		Short: "List a farmer's fields with their active plantings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				fields, err := s.ListFields(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(fields)
			})
		},
	}
}

func newConversationsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "conversations <farmer-id>",
		Short: "Show a farmer's most recent conversation turns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				turns, err := s.ListRecentConversations(ctx, id, limit)
				if err != nil {
					return err
				}
				return printJSON(turns)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", store.DefaultConversationLimit, "maximum turns to return")
	return cmd
}

func newQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show the approval queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				queue, err := s.ApprovalQueue(ctx)
				if err != nil {
					return err
				}
				return printJSON(queue)
			})
		},
	}
}

func newCropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crop <name>",
		Short: "Look up a crop in the technology reference table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				info, err := s.GetCropInfo(ctx, args[0])
				if err != nil {
					return err
				}
				if info == nil {
					return fmt.Errorf("crop %q not found", args[0])
				}
				return printJSON(info)
			})
		},
	}
}

func newDiagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diag",
		Short: "Show row counts for the CRM tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				counts, err := s.TableCounts(ctx)
				if err != nil {
					return err
				}
				return printJSON(counts)
			})
		},
	}
}
