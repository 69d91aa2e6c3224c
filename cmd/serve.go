package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felipegalvaoz/zemdocs-admin/internal/proxy"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard gateway",
	Long:  "Runs the HTTP gateway the dashboard talks to. The backend bearer token stays on this side; browsers only ever see the gateway.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		server := proxy.NewServer(env.svc,
			proxy.WithAllowedOrigins(cfg.Server.AllowedOrigins))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: server.Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down gateway")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting gateway", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "gateway listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "gateway port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
