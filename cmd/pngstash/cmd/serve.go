/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/api"
	"github.com/ssargent/pngstash/pkg/config"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the pngstash REST API server.

All routes under /api/v1 require the X-API-Key header. Without a configured key
(or with "auto") a key is generated for this session and logged.

Examples:
  pngstash serve --api-key=mysecretkey --port=8080
  PNGSTASH_API_KEY=mysecretkey pngstash serve --bind 0.0.0.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			apiKey := rt.cfg.Security.APIKey
			if apiKey == "" || apiKey == "auto" {
				apiKey, err = config.GenerateSecureKey(32)
				if err != nil {
					return err
				}
				rt.logger.Warn("No API key configured, generated one for this session: %s", apiKey)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serverConfig := api.ServerConfig{
				Port:         rt.cfg.Server.Port,
				Bind:         rt.cfg.Server.Bind,
				APIKey:       apiKey,
				MaxBodyBytes: rt.cfg.Server.MaxBodyBytes,
			}

			starter := container.GetServerFactory().CreateServerStarter()
			if err := starter.StartServer(ctx, container.GetStash(), serverConfig, rt.logger); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key required in the X-API-Key header")
	serveCmd.Flags().Int64("max-body-bytes", 32<<20, "Largest accepted request body")
	return serveCmd
}
