package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"audiodesk/app"
	"audiodesk/config"
	"audiodesk/logger"

	"github.com/spf13/cobra"
)

type options struct {
	envFile string
	host    string
	port    int
	debug   bool
}

// NewRootCommand builds the audiodesk command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "audiodesk",
		Short:         "audiodesk is the backend of the audiodesk media player.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before the environment")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "attach the logger (debug mode)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the backend and its command bridge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return RunServer(ctx, a)
		},
	}
	serve.Flags().StringVar(&opts.host, "host", "", "listen host (overrides AUDIODESK_HOST)")
	serve.Flags().IntVar(&opts.port, "port", 0, "listen port (overrides AUDIODESK_PORT)")

	invoke := &cobra.Command{
		Use:   "invoke <command> [json-args]",
		Short: "Run a single bridge command and print its JSON result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			var raw []byte
			if len(args) == 2 {
				raw = []byte(args[1])
			}
			return invokeCommand(cmd, a, args[0], raw, cmd.OutOrStdout())
		},
	}

	commands := &cobra.Command{
		Use:   "commands",
		Short: "List the registered bridge commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(a.Bridge.Commands(), "\n"))
			return err
		},
	}

	root.AddCommand(serve, invoke, commands)
	return root
}

// newApp loads the configuration and applies flag overrides
func newApp(cmd *cobra.Command, opts *options) (*app.App, error) {
	cfg := config.Load(opts.envFile)
	if cmd.Flags().Changed("debug") {
		cfg.Debug = opts.debug
	}
	if opts.host != "" {
		cfg.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Port = opts.port
	}
	return app.New(cfg)
}

func invokeCommand(cmd *cobra.Command, a *app.App, name string, raw []byte, out io.Writer) error {
	result, err := a.Invoke(cmd.Context(), name, raw)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// Execute executes the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
