package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	profilerender "github.com/bnema/starrail-profile-cli/internal/adapters/render/profile"
	"github.com/bnema/starrail-profile-cli/internal/application"
	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/spf13/cobra"
)

var (
	errUIDMissing          = errors.New("uid is required: pass --uid, set SRP_UID or run `srp auth set`")
	errUserIDMissing       = errors.New("ltuid is required: pass --user-id, set SRP_LTUID or run `srp auth set`")
	errSessionTokenMissing = errors.New("ltoken is required: pass --session-token, set SRP_LTOKEN or run `srp auth set`")
)

type fetchFlags struct {
	uid          string
	sessionToken string
	userID       string
	baseURL      string
	region       string
	timeout      time.Duration
	asJSON       bool
	showFetched  bool
}

func newFetchCmd(app *app) *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:     "fetch",
		Aliases: []string{"profile"},
		Short:   "Fetch and display the role summary and character roster",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.uid, "uid", "", "In-game UID (default: SRP_UID, config or stored credentials)")
	cmd.Flags().StringVar(&flags.sessionToken, "session-token", "", "HoYoLAB ltoken cookie value")
	cmd.Flags().StringVar(&flags.userID, "user-id", "", "HoYoLAB ltuid cookie value")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "Game-record API base URL (default: production)")
	cmd.Flags().StringVar(&flags.region, "region", "", "Game server region, e.g. prod_official_usa")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Per-request timeout (default: config timeout)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&flags.showFetched, "show-fetched-at", false, "Show when the profile was fetched")

	return cmd
}

func runFetch(cmd *cobra.Command, app *app, flags fetchFlags) error {
	overrides := app.cfg.Credentials()
	if flags.uid != "" {
		overrides.Identifier = domain.UID(flags.uid)
	}
	if flags.userID != "" {
		overrides.UserID = flags.userID
	}
	if flags.sessionToken != "" {
		overrides.SessionToken = flags.sessionToken
	}

	creds, err := app.service.ResolveCredentials(cmd.Context(), overrides)
	if err != nil {
		return err
	}
	if err := requireCredentials(creds); err != nil {
		return err
	}

	opts := sourceOptions{
		BaseURL:   firstNonEmpty(flags.baseURL, app.cfg.BaseURL),
		Region:    firstNonEmpty(flags.region, app.cfg.Region),
		UserAgent: app.cfg.UserAgent,
		Timeout:   app.cfg.Timeout,
	}
	if flags.timeout > 0 {
		opts.Timeout = flags.timeout
	}

	stderr := cmd.ErrOrStderr()
	withSpinner := !flags.asJSON && isTerminal(stderr)

	// Diagnostics are held back while the spinner owns the terminal line.
	var logOutput io.Writer = stderr
	var held bytes.Buffer
	if withSpinner {
		logOutput = &held
	}

	logger := newLogger(logOutput, app.cfg.LogLevel, app.cfg.LogFormat)
	service := application.NewProfileService(app.newSource(opts), app.clock, logger)

	var profile *domain.Profile
	fetch := func(ctx context.Context, progress func(application.FetchProgress)) error {
		var fetchErr error
		profile, fetchErr = service.FetchWithProgress(ctx, creds, progress)
		return fetchErr
	}

	if withSpinner {
		err = runFetchSpinner(cmd.Context(), stderr, fetch)
		_, _ = held.WriteTo(stderr)
	} else {
		err = fetch(cmd.Context(), nil)
	}
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			// Already reported through the logger.
			cmd.SilenceErrors = true
		}
		return err
	}

	return writeProfileOutput(cmd, app, profile, flags)
}

func writeProfileOutput(cmd *cobra.Command, app *app, profile *domain.Profile, flags fetchFlags) error {
	if flags.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}

	rendered, err := app.profileRenderer(profile, profilerender.RenderOptions{ShowFetchedAt: flags.showFetched})
	if err != nil {
		return fmt.Errorf("render profile: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func requireCredentials(creds domain.Credentials) error {
	switch {
	case creds.Identifier == "":
		return errUIDMissing
	case creds.UserID == "":
		return errUserIDMissing
	case creds.SessionToken == "":
		return errSessionTokenMissing
	default:
		return nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
