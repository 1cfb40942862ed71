package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/gYonder/folio-shell/internal/build"
	"github.com/gYonder/folio-shell/internal/commands"
	"github.com/gYonder/folio-shell/internal/config"
	"github.com/gYonder/folio-shell/internal/contact"
	"github.com/gYonder/folio-shell/internal/content"
	"github.com/gYonder/folio-shell/internal/logging"
	"github.com/gYonder/folio-shell/internal/prefs"
	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/shell"
	"github.com/gYonder/folio-shell/internal/theme"
	"github.com/gYonder/folio-shell/internal/ui"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("folio", pflag.ContinueOnError)
	showVersion := flags.Bool("version", false, "print version and exit")
	configPath := flags.String("config", "", "config file (default ~/.folio-shell/config.yaml)")
	debug := flags.Bool("debug", false, "debug logging")
	command := flags.StringP("command", "c", "", "run one command line and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		return 2
	}

	if *showVersion {
		fmt.Println(build.Version)
		return 0
	}

	// Load configuration from file or environment
	if *configPath == "" {
		if p, err := config.ConfigPath(); err == nil {
			*configPath = p
		}
	}
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFrom(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	log := zap.NewNop()
	if logPath, err := config.LogPath(); err == nil {
		if l, err := logging.New(logPath, cfg.LogLevel, *debug); err == nil {
			log = l
		} else {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		}
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting", zap.String("version", build.Version), zap.String("config", *configPath))

	// Theme: preference record over the desktop color scheme
	var kv prefs.KV = prefs.NewMemoryStore()
	if p, err := config.PreferencesPath(); err == nil {
		kv = prefs.NewFileStore(p)
	}
	sig := theme.DetectSignal(theme.ParseSignalMode(cfg.Signal), log)
	var manual *theme.ManualSignal
	if theme.SignalName(sig) == "none" {
		// Nothing to follow; let "theme os" stand in for the desktop.
		manual = theme.NewManualSignal(false)
		sig = manual
	}
	if c, ok := sig.(io.Closer); ok {
		defer c.Close()
	}

	store := theme.New(kv, sig, theme.WithLogger(log))
	defer store.Close()
	ui.ApplyTheme(store.Current())
	stopStyles := store.Observe(ui.ApplyTheme)
	defer stopStyles()

	catalog, err := content.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		return 1
	}

	sess := session.NewSession(cfg, store, catalog)
	sess.ConfigPath = *configPath
	sess.Log = log
	sess.Manual = manual
	sess.Clipboard = contact.SystemClipboard{}
	sess.Opener = contact.SystemOpener{}
	sess.Profile = lipgloss.ColorProfile()
	sess.Interactive = term.IsTerminal(int(os.Stdin.Fd()))
	sess.Width = func() int {
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return 0
		}
		return w
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	historyPath, _ := config.HistoryPath()

	if *command != "" {
		sh := shell.NewWithInstance(sess, nil, historyPath)
		env := &commands.ExecutionEnv{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
		if err := sh.RunLine(ctx, *command, env); err != nil && !errors.Is(err, commands.ErrExit) {
			fmt.Fprintf(os.Stderr, "folio: %v\n", err)
			return 1
		}
		return 0
	}

	sh, err := shell.New(sess, historyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start shell: %v\n", err)
		return 1
	}

	env := &commands.ExecutionEnv{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	if err := commands.Execute(ctx, sess, env, "home", nil); err != nil {
		log.Warn("render home", zap.Error(err))
	}
	fmt.Println()

	// The interrupt context only covers startup; readline handles ^C itself.
	stop()
	sh.Run(context.Background())
	log.Info("exiting")
	return 0
}
