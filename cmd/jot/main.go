package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/jot/internal/anim"
	"github.com/evanschultz/jot/internal/app"
	"github.com/evanschultz/jot/internal/config"
	"github.com/evanschultz/jot/internal/platform"
	"github.com/evanschultz/jot/internal/tui"
	"github.com/spf13/cobra"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	appName    string
	devMode    bool
}

// runtimeEnv is the resolved state every command starts from.
type runtimeEnv struct {
	opts       rootOptions
	paths      platform.Paths
	configPath string
	cfg        config.Config
}

// newRootCmd builds the command tree.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	opts := rootOptions{appName: "jot", devMode: version == "dev"}
	if envDev, ok := parseBoolEnv("JOT_DEV_MODE"); ok {
		opts.devMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("JOT_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}

	root := &cobra.Command{
		Use:           "jot",
		Short:         "A small animated to-do list for the terminal",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			env, err := resolveEnv(opts)
			if err != nil {
				return err
			}
			return runTUI(env, stderr)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(
		newPathsCmd(&opts, stdout),
		newReplayCmd(&opts, stdin, stdout, stderr),
		newConfigCmd(&opts, stdout),
	)
	return root
}

// newPathsCmd prints resolved runtime paths.
func newPathsCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{
				AppName: opts.appName,
				DevMode: opts.devMode,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", resolveConfigPath(opts.configPath, paths))
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "log_dir: %s\n", paths.LogDir)
			return nil
		},
	}
}

// newConfigCmd groups config file helpers.
func newConfigCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{
				AppName: opts.appName,
				DevMode: opts.devMode,
			})
			if err != nil {
				return err
			}
			path := resolveConfigPath(opts.configPath, paths)
			if err := config.WriteFile(path, config.Default(), force); err != nil {
				return fmt.Errorf("write default config: %w", err)
			}
			_, _ = fmt.Fprintf(stdout, "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)
	return cmd
}

// resolveEnv resolves paths and loads config for one command run.
func resolveEnv(opts rootOptions) (runtimeEnv, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return runtimeEnv{}, err
	}
	configPath := resolveConfigPath(opts.configPath, paths)
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return runtimeEnv{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if strings.TrimSpace(cfg.Logging.DevFile.Dir) == "" {
		cfg.Logging.DevFile.Dir = paths.LogDir
	}
	return runtimeEnv{opts: opts, paths: paths, configPath: configPath, cfg: cfg}, nil
}

// resolveConfigPath applies flag, then JOT_CONFIG, then the platform default.
func resolveConfigPath(flagPath string, paths platform.Paths) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	if envPath := strings.TrimSpace(os.Getenv("JOT_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// runTUI runs the interactive list until the user quits.
func runTUI(env runtimeEnv, stderr io.Writer) error {
	logger, err := newRuntimeLogger(stderr, env.opts.appName, env.opts.devMode, env.cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Keep TUI rendering clean: runtime logs go only to the dev-file sink.
	logger.SetConsoleEnabled(false)
	defer func() {
		if closeErr := logger.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", env.opts.appName, "dev_mode", env.opts.devMode, "command", "tui")
	logger.Debug("runtime paths resolved", "config_path", env.configPath, "data_dir", env.paths.DataDir)
	logger.Info("configuration loaded", "config_path", env.configPath, "log_level", env.cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	ctrlCfg, err := toControllerConfig(env.cfg.Animation)
	if err != nil {
		return err
	}
	ctrl := app.NewController(app.UUIDv7, time.Now, ctrlCfg, app.WithLogger(logger))
	m := tui.NewModel(ctrl,
		tui.WithTitle(env.cfg.UI.Title),
		tui.WithPlaceholder(env.cfg.UI.Placeholder),
		tui.WithKeyConfig(toTUIKeyConfig(env.cfg.Keys)),
		tui.WithFrameInterval(env.cfg.FrameInterval()),
	)

	logger.Info("starting tui program loop")
	final, err := programFactory(m).Run()
	if err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	count := len(ctrl.Tasks())
	if fm, ok := final.(tui.Model); ok {
		count = fm.TaskCount()
	}
	logger.Info("command flow complete", "command", "tui", "tasks", count)
	return nil
}

// toControllerConfig maps the animation config section onto controller timings.
func toControllerConfig(cfg config.AnimationConfig) (app.ControllerConfig, error) {
	addEasing, err := anim.ParseEasing(cfg.AddEasing)
	if err != nil {
		return app.ControllerConfig{}, fmt.Errorf("animation.add_easing: %w", err)
	}
	fadeEasing, err := anim.ParseEasing(cfg.FadeEasing)
	if err != nil {
		return app.ControllerConfig{}, fmt.Errorf("animation.fade_easing: %w", err)
	}
	add, fade := config.Config{Animation: cfg}.AnimationDurations()
	return app.ControllerConfig{
		AddDuration:  add,
		AddEasing:    addEasing,
		FadeDuration: fade,
		FadeEasing:   fadeEasing,
	}, nil
}

// toTUIKeyConfig maps the keys config section onto TUI overrides.
func toTUIKeyConfig(cfg config.KeyConfig) tui.KeyConfig {
	return tui.KeyConfig{
		Toggle: cfg.Toggle,
		Edit:   cfg.Edit,
		Delete: cfg.Delete,
		Copy:   cfg.Copy,
	}
}

// parseBoolEnv parses a boolean environment variable when set.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
