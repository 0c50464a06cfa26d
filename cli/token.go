package cli

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dosada05/tournament-brackets/middleware"
	"github.com/Dosada05/tournament-brackets/models"
)

func (c *CLI) tokenCommand() *cobra.Command {
	var (
		secret string
		userID int
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an API token",
		Long: `Sign a bearer token accepted by the bracket API.

The secret defaults to JWT_SECRET_KEY. Only organizer and admin tokens can change
brackets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET_KEY")
			}
			if secret == "" {
				return errors.New("no secret: pass --secret or set JWT_SECRET_KEY")
			}
			r := models.UserRole(role)
			switch r {
			case models.RoleAdmin, models.RoleOrganizer, models.RolePlayer:
			default:
				return errors.New("role must be admin, organizer or player")
			}
			if ttl <= 0 {
				return errors.New("ttl must be positive")
			}

			token, err := middleware.IssueToken([]byte(secret), userID, r, ttl)
			if err != nil {
				return err
			}
			return c.printJSON(map[string]interface{}{
				"token":      token,
				"expires_at": time.Now().Add(ttl).UTC().Format(time.RFC3339),
			})
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret (default $JWT_SECRET_KEY)")
	cmd.Flags().IntVar(&userID, "user", 1, "user id")
	cmd.Flags().StringVar(&role, "role", string(models.RoleOrganizer), "admin, organizer or player")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
