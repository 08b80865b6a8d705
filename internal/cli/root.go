// Package cli implements the shrub command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shrub/internal/catalog"
	"github.com/mesh-intelligence/shrub/internal/logger"
	"github.com/mesh-intelligence/shrub/internal/paths"
	"github.com/mesh-intelligence/shrub/pkg/codec"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by one command tree.
type app struct {
	flags    rootFlags
	config   *viper.Viper
	log      *slog.Logger
	registry *codec.Registry
}

// NewRootCmd creates the top-level "shrub" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "shrub",
		Short: "Typed item data for game entities",
		Long: "Shrub stores item types (prototypes holding shared data blocks) and the\n" +
			"items spawned from them. Items inherit every block they do not override.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.shrub-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newLoadCmd(),
		a.newTypesCmd(),
		a.newSpawnCmd(),
		a.newShowCmd(),
		a.newSetCmd(),
		a.newUnsetCmd(),
		a.newRmCmd(),
	)
	return root
}

// setup loads .env, the config file and the logger before any subcommand.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.config = cfg

	logCfg := logger.Config{
		Level:     cfg.GetString(cfgKeyLogLevel),
		Format:    cfg.GetString(cfgKeyLogFormat),
		AddSource: cfg.GetBool(cfgKeyLogSource),
	}
	if a.flags.logLevel != "" {
		logCfg.Level = a.flags.logLevel
	}
	a.log = logger.New(logCfg, cmd.ErrOrStderr())
	a.log.Debug("config loaded", "config_dir", configDir, "file", cfg.ConfigFileUsed())

	a.registry = catalog.NewRegistry()
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// systemError marks failures of the environment (disk, database) rather
// than of the user's input.
type systemError struct {
	err error
}

func (e systemError) Error() string { return e.err.Error() }

func (e systemError) Unwrap() error { return e.err }

func sysErr(format string, args ...any) error {
	return systemError{err: fmt.Errorf(format, args...)}
}

func exitCode(err error) int {
	var se systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
