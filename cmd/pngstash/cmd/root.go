/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/config"
	"github.com/ssargent/pngstash/pkg/di"
	"github.com/ssargent/pngstash/pkg/logging"
	"github.com/ssargent/pngstash/pkg/store"
)

type contextKey string

const (
	runtimeKey contextKey = "runtime"

	// commands annotated with skipConfig run without resolving configuration
	annotationSkipConfig = "skipConfig"
)

// runtime carries the resolved configuration and logger to subcommands
type runtime struct {
	cfg    *config.Config
	logger logging.Logger
}

var container *di.Container

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

// NewRootCmd builds the pngstash command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pngstash",
		Short: "pngstash - hide messages in PNG files",
		Long: `pngstash stores text messages inside PNG files as ancillary chunks.

Messages can be encoded, decoded, removed and listed without disturbing the
image data. A passphrase optionally seals a message before it is written.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationSkipConfig] == "true" {
				return nil
			}

			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Resolve(configPath, cmd.Flags())
			if err != nil {
				return err
			}

			level := logging.LevelDebug
			if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
				level, err = logging.ParseLevel(cfg.Logging.Level)
				if err != nil {
					return err
				}
			}
			logger := logging.New(logging.WithLevel(level), logging.WithOutput(cmd.ErrOrStderr()))

			if container == nil {
				container = di.NewContainer()
			}
			container.Configure(store.FileStoreConfig{
				Fsync:   cfg.Output.Fsync,
				MaxSize: cfg.Output.MaxFileSize,
			}, cfg.Codec.StrictTypes, logger)

			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey, &runtime{cfg: cfg, logger: logger}))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.config/pngstash/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newRemoveCmd(),
		newPrintCmd(),
		newServeCmd(),
		newInitCmd(),
	)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}

func runtimeFrom(cmd *cobra.Command) (*runtime, error) {
	rt, ok := cmd.Context().Value(runtimeKey).(*runtime)
	if !ok || container == nil {
		return nil, errors.New("configuration not loaded")
	}
	return rt, nil
}

// passphraseFrom returns --passphrase, falling back to PNGSTASH_PASSPHRASE
func passphraseFrom(cmd *cobra.Command) string {
	if passphrase, _ := cmd.Flags().GetString("passphrase"); passphrase != "" {
		return passphrase
	}
	return os.Getenv(config.EnvPrefix + "_PASSPHRASE")
}
