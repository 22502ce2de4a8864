package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/kurso-app/kurso/internal/api"
	"github.com/kurso-app/kurso/internal/app"
	"github.com/kurso-app/kurso/internal/screen"
	"github.com/kurso-app/kurso/internal/screens"
	"github.com/kurso-app/kurso/internal/store"
)

// runApp builds the backend client and local store, then launches the
// TUI. initial picks the starting screen; nil means home.
func runApp(cmd *cobra.Command, initial func(deps screens.Deps) screen.Screen) error {
	deps, client, cleanup, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	warnIfUnsupported(client)

	if err := setupLogging(); err != nil {
		return err
	}

	opts := app.Options{Deps: deps}
	if initial != nil {
		opts.Initial = initial(deps)
	}
	return app.Run(opts)
}

// buildDeps wires the API client and, best effort, the local history
// store. A broken store disables history but never blocks the app.
func buildDeps(cmd *cobra.Command) (screens.Deps, *api.Client, func(), error) {
	cfg := api.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return screens.Deps{}, nil, nil, fmt.Errorf("%w (set KURSO_API_URL, KURSO_USER_ID and KURSO_TOKEN)", err)
	}
	client := api.New(cfg)

	deps := screens.Deps{
		Quizzes:     client,
		Courses:     client,
		Enrollments: client,
		UserID:      client.UserID(),
	}

	cleanup := func() {}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "History unavailable:", err)
		return deps, client, cleanup, nil
	}
	st, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "History unavailable:", err)
		return deps, client, cleanup, nil
	}
	repo, err := st.AttemptRepo()
	if err != nil {
		st.Close()
		fmt.Fprintln(os.Stderr, "History unavailable:", err)
		return deps, client, cleanup, nil
	}

	deps.Attempts = repo
	cleanup = func() { st.Close() }
	return deps, client, cleanup, nil
}

// warnIfUnsupported compares the client version against the backend's
// minimum. Advisory only; an unreachable meta endpoint is ignored.
func warnIfUnsupported(client *api.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	meta, err := client.GetServerMeta(ctx)
	if err != nil || meta.ClientSupported(version) {
		return
	}
	fmt.Fprintf(os.Stderr, "This client (%s) is older than the server minimum (%s); please update.\n",
		version, meta.MinClientVersion)
}

// setupLogging routes the standard logger to a file when KURSO_DEBUG is
// set, and silences it otherwise so stray log output cannot corrupt
// the terminal UI.
func setupLogging() error {
	if os.Getenv("KURSO_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	if _, err := tea.LogToFile("kurso-debug.log", "kurso"); err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	return nil
}
