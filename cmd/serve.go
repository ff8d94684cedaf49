package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calc-sim/fxpad/internal/config"
	"github.com/calc-sim/fxpad/internal/dispatch"
	"github.com/calc-sim/fxpad/internal/logging"
	"github.com/calc-sim/fxpad/internal/server"
	"github.com/calc-sim/fxpad/internal/transport"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the web keypad server",
	Long: `Start the web keypad server. Serves the calculator keypad page,
forwards key presses to the engine FIFO, and automatically opens a browser.

The engine must open the FIFO for reading before presses can be delivered;
sends block until it does.

Examples:
  fxpad serve                          # Serve on localhost:5000
  fxpad serve --port 8080              # Custom port
  fxpad serve --fifo /run/keypad       # Custom endpoint path
  fxpad serve --no-open                # Don't open the browser`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 5000, "Port to serve on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")
	serveCmd.Flags().Bool("no-open", false, "Don't open browser automatically")
	serveCmd.Flags().String("fifo", transport.DefaultEndpoint, "Named-pipe endpoint path")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.no-open", serveCmd.Flags().Lookup("no-open"))
	viper.BindPFlag("transport.fifo", serveCmd.Flags().Lookup("fifo"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	writer := transport.NewWriter(cfg.Transport.Fifo, logger)
	dispatcher := dispatch.NewDispatcher(writer, logger)

	srv, err := server.New(cfg, dispatcher, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Transport.Watchdog {
		watchdog, err := transport.NewEndpointWatcher(writer, logger)
		if err != nil {
			logger.Warn(ctx, err, "endpoint watchdog unavailable")
		} else if err := watchdog.Start(ctx); err != nil {
			logger.Warn(ctx, err, "endpoint watchdog failed to start")
		} else {
			defer watchdog.Stop()
		}
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
			logger.Error(ctx, shutdownErr, "error during server shutdown")
		}
		cancel()
	}()

	fmt.Printf("Starting fxpad keypad at http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Engine endpoint: %s\n", cfg.Transport.Fifo)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
