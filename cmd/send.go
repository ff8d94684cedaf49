package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calc-sim/fxpad/internal/config"
	"github.com/calc-sim/fxpad/internal/dispatch"
	"github.com/calc-sim/fxpad/internal/logging"
	"github.com/calc-sim/fxpad/internal/transport"
)

var sendCmd = &cobra.Command{
	Use:   "send KEY_NAME [KEY_NAME...]",
	Short: "Send key presses to the engine from the shell",
	Long: `Send one or more key presses straight to the engine FIFO, bypassing
the web server. Names are validated against the key registry before the pipe
is touched, exactly as web presses are.

Sends block until the engine has the FIFO open for reading.

Examples:
  fxpad send KEY_PLUS                  # One key
  fxpad send KEY1 KEY_PLUS KEY2 KEY_EQUAL   # 1+2=
  fxpad send --fifo /run/keypad KEY_CLEAR`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().String("fifo", transport.DefaultEndpoint, "Named-pipe endpoint path")
}

func runSend(cmd *cobra.Command, args []string) error {
	// serve owns the transport.fifo binding; set the value directly here so
	// the two flags don't fight over one viper key.
	if cmd.Flags().Changed("fifo") {
		fifo, _ := cmd.Flags().GetString("fifo")
		viper.Set("transport.fifo", fifo)
	}

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

	ctx := context.Background()

	for _, name := range args {
		result := dispatcher.Press(ctx, name)
		if !result.OK() {
			return fmt.Errorf("%s", result.Message)
		}
		fmt.Printf("sent %s (%d)\n", result.Key, result.Value)
	}

	return nil
}
