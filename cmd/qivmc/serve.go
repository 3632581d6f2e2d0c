package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kegliz/qivm/internal/app"
	"github.com/kegliz/qivm/internal/config"
)

func newServeCmd() *cobra.Command {
	var port int
	var localOnly bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the compile/execute HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("port") {
				port = cfg.GetInt(config.KeyPort)
			}
			if !cmd.Flags().Changed("local-only") {
				localOnly = cfg.GetBool(config.KeyLocalOnly)
			}

			srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: rootCmd.Version})
			if err != nil {
				return fmt.Errorf("starting server: %w", err)
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Listen(port, localOnly)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server stopped: %w", err)
				}
				return nil
			case <-quit:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP listen port")
	cmd.Flags().BoolVar(&localOnly, "local-only", false, "bind to 127.0.0.1 only")
	return cmd
}
