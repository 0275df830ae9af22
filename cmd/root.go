package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/oceanlens/oceanlens/internal/api"
	"github.com/oceanlens/oceanlens/internal/config"
	"github.com/oceanlens/oceanlens/internal/kv"
	"github.com/oceanlens/oceanlens/internal/session"
)

var (
	cfgFile     string
	baseURLFlag string
	verbose     bool

	logger = zap.NewNop()
)

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	rootCmd := &cobra.Command{
		Use:   "oceanlens",
		Short: "Personality analysis for public social profiles",
		Long:  "oceanlens analyzes the OCEAN personality traits behind a public social profile's posts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			zcfg := zap.NewDevelopmentConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			l, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.config/oceanlens/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "override the analysis service URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initConfig loads configuration, applying CLI flag overrides.
func initConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	return cfg
}

// newClient builds the API client from configuration.
func newClient(cfg *config.Config) *api.Client {
	exec := api.NewExecutor(cfg.BaseURL, logger)
	return api.NewClient(exec, cfg.RequestTimeout(), cfg.AnalyzeTimeout())
}

// openSession opens the durable store and hydrates the session from it.
// The returned cleanup must run before the command exits.
func openSession(cfg *config.Config) (*session.Store, func(), error) {
	dbPath := ""
	if cfg.DataDir != "" {
		dbPath = filepath.Join(cfg.DataDir, "oceanlens.db")
	} else {
		var err error
		dbPath, err = kv.DefaultDBPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve data directory: %w", err)
		}
	}

	store, err := kv.OpenSQLite(dbPath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}
	return session.Open(store), func() { store.Close() }, nil
}

// requireSession returns the current session or an actionable error when the
// user is not logged in.
func requireSession(store *session.Store) (session.Session, error) {
	sess := store.Current()
	if !sess.LoggedIn() {
		return session.Session{}, fmt.Errorf("not logged in (run 'oceanlens login')")
	}
	return sess, nil
}

// authFailure applies the session policy for authenticated calls: a 401
// means the token is dead, so the local session is cleared.
func authFailure(store *session.Store, err error) error {
	if api.IsUnauthorized(err) {
		if clearErr := store.Clear(); clearErr != nil {
			logger.Warn("clear session", zap.Error(clearErr))
		}
		return fmt.Errorf("your session has expired, please log in again")
	}
	return err
}

// commandContext returns a context cancelled on SIGINT/SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read when it is not (pipes, tests).
func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	defer fmt.Fprintln(os.Stderr)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", fmt.Errorf("read password: empty input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
