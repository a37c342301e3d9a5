package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pagewise/internal/auth"
)

func NewTokenCmd() *cobra.Command {
	var (
		uid string
		ttl time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed user token",
		Long: `Issue a bearer token for a user id, signed with AUTH_SECRET.

Examples:
  flowctl token --uid alice
  flowctl token --uid alice --ttl 1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uid = strings.TrimSpace(uid)
			if uid == "" {
				return fmt.Errorf("--uid is required")
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive, got %s", ttl)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			token, err := auth.Issue([]byte(cfg.AuthSecret), uid, ttl)
			if err != nil {
				return fmt.Errorf("issuing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "User id to issue the token for")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}
