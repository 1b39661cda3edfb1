package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/spf13/cobra"
)

// readFromStdin is the --session-token value that reads the ltoken from stdin.
const readFromStdin = "-"

var (
	errAuthUserIDMissing       = errors.New("ltuid is required: pass --user-id or set SRP_LTUID")
	errAuthSessionTokenMissing = errors.New("ltoken is required: pass --session-token, --session-token - to read stdin, or set SRP_LTOKEN")
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored HoYoLAB credentials",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthShowCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var uid string
	var userID string
	var sessionToken string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the uid, ltuid and ltoken used by fetch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromEnv := app.cfg.Credentials()
			uid = firstNonEmpty(uid, string(fromEnv.Identifier))
			userID = firstNonEmpty(userID, fromEnv.UserID)
			if userID == "" {
				return errAuthUserIDMissing
			}

			token, err := sessionTokenInput(cmd.InOrStdin(), sessionToken, fromEnv.SessionToken)
			if err != nil {
				return err
			}

			if err := app.service.SetAuth(cmd.Context(), domain.UID(uid), userID, token); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored credentials for ltuid %s\n", userID)
			return err
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "In-game UID (default: SRP_UID)")
	cmd.Flags().StringVar(&userID, "user-id", "", "HoYoLAB ltuid cookie value (default: SRP_LTUID)")
	cmd.Flags().StringVar(&sessionToken, "session-token", "", "HoYoLAB ltoken cookie value, or - to read it from stdin (default: SRP_LTOKEN)")

	return cmd
}

// sessionTokenInput picks the ltoken for auth set. The flag wins over the
// environment; "-" reads the first line of stdin.
func sessionTokenInput(stdin io.Reader, flagValue, envValue string) (string, error) {
	if strings.TrimSpace(flagValue) == readFromStdin {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read ltoken from stdin: %w", err)
		}
		if token := strings.TrimSpace(line); token != "" {
			return token, nil
		}
		return "", errors.New("read ltoken from stdin: no input")
	}

	if token := firstNonEmpty(flagValue, envValue); token != "" {
		return token, nil
	}
	return "", errAuthSessionTokenMissing
}

func newAuthShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored credential record (never the token)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, err := app.service.GetAuth(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrCredentialsNotFound) {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "no stored credentials")
				}
				return err
			}

			out := cmd.OutOrStdout()
			uid := string(record.Identifier)
			if uid == "" {
				uid = "-"
			}
			updated := "-"
			if !record.UpdatedAt.IsZero() {
				updated = record.UpdatedAt.Format(time.RFC3339)
			}

			_, err = fmt.Fprintf(out, "uid: %s\nltuid: %s\nsecret: %s\nupdated: %s\n", uid, record.UserID, record.SecretRef, updated)
			return err
		},
	}
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete the stored credential record and its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.service.RemoveAuth(cmd.Context())
		},
	}
}
