package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aetherid/console"
	"github.com/aetherid/console/client/auth/transport"
	"github.com/jessevdk/go-flags"
)

// Run parses args and executes the selected command, writing results to stdout.
func Run(args []string) error {
	return RunWith(context.Background(), args, os.Stdout, os.Stderr)
}

// RunWith is Run with explicit context and output streams.
func RunWith(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}
	if err := options.load(ctx); err != nil {
		return err
	}
	level := slog.LevelWarn
	if options.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	options.Logger = logger
	options.Navigator = transport.NewRouteNavigator("", func(route string) {
		_, _ = fmt.Fprintln(stderr, "session expired, run: console login")
	})

	cli, err := console.NewClient(ctx, &options.ClientOptions)
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()
	service := &Service{console: cli, stdout: stdout, logger: logger}

	switch parser.Active.Name {
	case "login":
		return service.Login(ctx, &options.Login)
	case "logout":
		return service.Logout(ctx)
	case "whoami":
		return service.WhoAmI()
	case "get":
		return service.Get(ctx, &options.Get)
	case "orders":
		return service.Orders(ctx, &options.Orders)
	case "dashboard":
		return service.Dashboard(ctx)
	}
	return fmt.Errorf("unsupported command: %v", parser.Active.Name)
}

// load merges the options document and environment under the flags given on
// the command line. Unless a store type was configured anywhere, the session is
// kept in a file so that it survives between invocations.
func (o *Options) load(ctx context.Context) error {
	flagged := o.ClientOptions
	loaded, err := console.DecodeOptions(ctx, o.Config)
	if err != nil {
		return err
	}
	if flagged.BaseURL != "" {
		loaded.BaseURL = flagged.BaseURL
	}
	if flagged.TimeoutSeconds != 0 {
		loaded.TimeoutSeconds = flagged.TimeoutSeconds
	}
	if flagged.RefreshTimeoutSeconds != 0 {
		loaded.RefreshTimeoutSeconds = flagged.RefreshTimeoutSeconds
	}
	if flagged.LoginRoute != "" {
		loaded.LoginRoute = flagged.LoginRoute
	}
	if flagged.Store.URL != "" {
		loaded.Store.URL = flagged.Store.URL
	}
	if flagged.Store.Prefix != "" {
		loaded.Store.Prefix = flagged.Store.Prefix
	}
	if flagged.Store.Type != "" {
		loaded.Store.Type = flagged.Store.Type
	} else if loaded.Store.Type == "" && loaded.Store.URL == "" {
		if home, err := os.UserHomeDir(); err == nil {
			loaded.Store = console.ClientStore{Type: console.StoreFile, URL: "file://" + filepath.Join(home, ".console", "session.json")}
		}
	}
	loaded.Init()
	o.ClientOptions = *loaded
	return nil
}
