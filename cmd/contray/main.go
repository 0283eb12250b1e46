package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lxn/win"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/contray/contray/internal/launch"
	"github.com/contray/contray/internal/power"
	"github.com/contray/contray/internal/tray"
	"github.com/contray/contray/internal/window"
)

var (
	verbose bool
	logger  *zap.Logger
	spec    launch.Spec
)

const (
	// titleDelay gives the child time to create its window and set a title
	// before the tooltip is read.
	titleDelay = 500 * time.Millisecond
	// minimizedDelay covers windows that finish initializing slightly after
	// the tray icon is shown.
	minimizedDelay = 100 * time.Millisecond
)

var rootCmd = &cobra.Command{
	Use:   "contray",
	Short: "Run a console application as a tray icon",
	Long: `Contray starts a console application with its window hidden behind a tray
icon. Double-clicking the icon toggles the console window; when the
application exits, so does contray, and vice versa.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger based on verbose flag
		var err error
		if verbose {
			config := zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			logger, err = config.Build()
		} else {
			config := zap.NewProductionConfig()
			config.DisableCaller = true
			config.DisableStacktrace = true
			config.Encoding = "console"
			config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			logger, err = config.Build()
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	// Disable Cobra's mousetrap feature on Windows: this tool is commonly
	// started from a shortcut or File Explorer, not a shell.
	// See: https://github.com/spf13/cobra/issues/844
	cobra.MousetrapHelpText = ""

	flags := rootCmd.Flags()
	flags.StringVarP(&spec.Program, "program", "p", "", "path to the console application to start")
	flags.StringVarP(&spec.Args, "args", "a", "", "arguments passed to the application")
	flags.StringVarP(&spec.Dir, "dir", "d", "", "working directory for the application")
	flags.StringVarP(&spec.Icon, "icon", "i", "", "tray icon file (defaults to contray's own icon)")
	flags.StringVarP(&spec.Tooltip, "tooltip", "t", "", "tray tooltip (defaults to the application's window title)")
	flags.BoolVarP(&spec.Minimized, "minimized", "m", false, "start with the console window hidden")
	flags.BoolVarP(&spec.PreventSleep, "prevent-sleep", "s", false, "prevent the system from entering idle sleep")
	_ = rootCmd.MarkFlagRequired("program")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func run() error {
	// The tray window and its message loop must live on one OS thread.
	runtime.LockOSThread()
	defer func() {
		_ = logger.Sync()
	}()

	child, err := launch.Start(spec, logger)
	if err != nil {
		return err
	}

	// Child exit ends the wrapper: neither process outlives the other.
	go func() {
		<-child.Done()
		logger.Info("child exited, shutting down")
		os.Exit(0)
	}()

	// External wrapper termination takes the child down with it.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		child.Kill()
		os.Exit(0)
	}()

	resolver := window.NewResolver()
	toggle := func() {
		// re-resolve on every toggle: the window may not have existed at
		// startup, or may have been recreated since
		h, _ := resolver.Resolve(child.PID())
		window.Toggle(h)
	}

	// Window titles are usually empty right after creation; give the child
	// a moment before the tooltip is read. Best effort, not a guarantee.
	time.Sleep(titleDelay)
	tip := child.Tooltip(spec.Tooltip, resolver)

	if spec.PreventSleep {
		power.KeepAwake()
		logger.Info("idle sleep inhibited")
	}

	icon, err := tray.New(tray.Config{
		Tooltip:  tip,
		IconPath: spec.Icon,
		OnToggle: toggle,
	}, logger)
	if err != nil {
		child.Kill()
		return err
	}

	if spec.Minimized {
		// fire and forget: if the window still is not there, the toggle is
		// a silent no-op
		go func() {
			time.Sleep(minimizedDelay)
			toggle()
		}()
	}

	logger.Info("tray ready", zap.String("tooltip", tip))
	icon.Run()

	child.Kill()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}

// fatal surfaces startup failures as a blocking modal. The binary is built
// with -H windowsgui and has no console of its own to print to.
func fatal(err error) {
	text, _ := syscall.UTF16PtrFromString(fmt.Sprintf("%v\n\n%s", err, rootCmd.UsageString()))
	caption, _ := syscall.UTF16PtrFromString("contray")
	win.MessageBox(0, text, caption, win.MB_OK|win.MB_ICONERROR)
	os.Exit(-1)
}
