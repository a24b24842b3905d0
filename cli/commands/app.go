// Package commands implements the wopr command-line tool using Cobra.
package commands

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wopr-network/wopr-go/cli/config"
	"github.com/wopr-network/wopr-go/cli/keystore"
	"github.com/wopr-network/wopr-go/core"
	"github.com/wopr-network/wopr-go/wopr"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ClientFactory creates a gateway client.
type ClientFactory func(apiKey string, opts ...wopr.Option) (*wopr.Client, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newClient   ClientFactory
	newKeystore KeystoreFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	dotenvPath  string
	logger      *slog.Logger

	cfgFile    string
	baseURL    string
	apiKey     string
	jsonOutput bool
	verbose    bool
	cfg        *config.Config
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithClientFactory injects a client factory dependency.
func WithClientFactory(factory ClientFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newClient = factory
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// WithDotenv sets the .env file loaded before the environment is read.
// An empty path disables loading.
func WithDotenv(path string) AppOption {
	return func(a *App) {
		a.dotenvPath = path
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  config.LoadConfig,
		newClient:   wopr.New,
		newKeystore: keystore.NewKeystore,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		dotenvPath:  ".env",
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "wopr",
		Short: "wopr - command-line client for the WOPR inference gateway",
		Long: `wopr talks to the WOPR inference gateway.

Use it to chat with models, generate media, send messages, place calls,
and manage the API keys it authenticates with.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.wopr/config.yaml)")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "gateway base URL (default "+wopr.DefaultBaseURL+")")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "API key (overrides "+wopr.APIKeyEnvVar+" and the keystore)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newChatCommand())
	root.AddCommand(a.newModelsCommand())
	root.AddCommand(a.newImagesCommand())
	root.AddCommand(a.newAudioCommand())
	root.AddCommand(a.newVideoCommand())
	root.AddCommand(a.newSMSCommand())
	root.AddCommand(a.newPhoneCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command. Failures from commands have already been
// reported on stderr; the returned error carries the process exit code.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is canceled to abort
// an in-flight request.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// ExitCode returns the process exit code for an error from Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return exitCode(err)
}

// Reported reports whether err was already printed by a command.
func Reported(err error) bool {
	var ee *exitError
	return errors.As(err, &ee)
}

func (a *App) initConfig() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	if a.dotenvPath != "" {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(a.dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return a.fail(exitWithCode(ExitValidation, err))
		}
	}

	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return a.fail(exitWithCode(ExitValidation, err))
	}
	a.cfg = cfg

	a.logger.Debug("config loaded", slog.String("path", path))
	return nil
}

// client builds a gateway client from flags, environment and config.
func (a *App) client() (*wopr.Client, error) {
	key, err := a.resolveAPIKey()
	if err != nil {
		return nil, err
	}

	opts := []wopr.Option{
		wopr.WithTelemetry(core.LogTelemetryHook{Logger: a.logger}),
		wopr.WithUserAgent("wopr-cli/" + Version),
	}
	if base := a.resolveBaseURL(); base != "" {
		opts = append(opts, wopr.WithBaseURL(base))
	}
	if a.cfg != nil && a.cfg.Timeout > 0 {
		opts = append(opts, wopr.WithTimeout(a.cfg.Timeout))
	}

	c, err := a.newClient(key, opts...)
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}
	return c, nil
}

// resolveAPIKey returns the first key found in: --api-key, WOPR_API_KEY,
// then the keystore entry named by api_key_ref.
func (a *App) resolveAPIKey() (string, error) {
	if a.apiKey != "" {
		return a.apiKey, nil
	}
	if key := os.Getenv(wopr.APIKeyEnvVar); key != "" {
		return key, nil
	}

	ref := a.cfg.KeyRef()
	ks, err := a.newKeystore()
	if err != nil {
		return "", exitWithCode(ExitValidation, err)
	}
	key, err := ks.Get(ref)
	if err != nil {
		var nf *keystore.ErrKeyNotFound
		if errors.As(err, &nf) {
			return "", exitWithCode(ExitValidation, errNoAPIKey(ref))
		}
		return "", exitWithCode(ExitValidation, err)
	}

	a.logger.Debug("api key loaded from keystore", slog.String("ref", ref))
	return key, nil
}

func (a *App) resolveBaseURL() string {
	if a.baseURL != "" {
		return a.baseURL
	}
	if base := os.Getenv(wopr.BaseURLEnvVar); base != "" {
		return base
	}
	if a.cfg != nil {
		return a.cfg.BaseURL
	}
	return ""
}

func (a *App) defaultModel() string {
	if a.cfg == nil {
		return ""
	}
	return a.cfg.DefaultModel
}
