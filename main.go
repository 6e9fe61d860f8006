package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"library-catalog/config"
	"library-catalog/library"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	config.LoadEnvFiles()
	cfg := config.Load()

	var store string
	cmd := &cobra.Command{
		Use:          "library",
		Short:        "Interactive in-memory library catalog",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg.Store = library.StoreKind(store)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&store, "store", string(cfg.Store), "record store: memory or sqlite (both in-memory)")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level written to stderr: debug, info, warn, error")
	cmd.Flags().BoolVar(&cfg.MaskPassword, "mask-password", cfg.MaskPassword, "hide password input when stdin is a terminal")
	return cmd
}

func run(cfg *config.Config) error {
	logger := cfg.NewLogger()

	manager, err := library.NewLibraryManager(cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer manager.Close()

	opts := []library.ConsoleOption{library.WithLogger(logger)}
	if cfg.MaskPassword {
		if reader, ok := library.TerminalPasswordReader(int(os.Stdin.Fd()), os.Stdout); ok {
			opts = append(opts, library.WithPasswordReader(reader))
		}
	}

	err = library.NewConsole(manager, os.Stdin, os.Stdout, opts...).Run()
	if library.IsInputClosed(err) {
		logger.Debug("input closed, shutting down")
		return nil
	}
	return err
}
