// Package cmd provides the command-line interface for fxpad with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --port, etc.) - highest priority
//	2. FXPAD_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (FXPAD_SERVER_PORT, etc.)
//	4. Configuration files (.fxpad.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fxpad",
	Short: "Browser keypad bridge for the fx-991 calculator engine",
	Long: `fxpad bridges a browser-rendered scientific-calculator keypad to the
calculator engine over a named pipe. Key presses become 4-byte key-code
frames the engine reads from the FIFO.

Quick Start:
  fxpad serve                     Start the web keypad
  fxpad send KEY_PLUS             Send a key from the shell
  fxpad keys                      List the key registry
  fxpad version                   Show version information`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .fxpad.yml, can also use FXPAD_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system with support for multiple
// config sources, in the same precedence order as the long help above.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("FXPAD_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fxpad")
	}

	// Enable automatic environment variable binding with FXPAD_ prefix
	// Examples: FXPAD_SERVER_PORT, FXPAD_TRANSPORT_FIFO
	viper.SetEnvPrefix("FXPAD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// If the file doesn't exist or has errors, Viper will use defaults
	// without failing
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
