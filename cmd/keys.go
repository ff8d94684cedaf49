package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/calc-sim/fxpad/internal/keys"
)

var keysFormat string

var keysCmd = &cobra.Command{
	Use:     "keys",
	Aliases: []string{"k"},
	Short:   "List the key registry",
	Long: `List every key in the registry with its wire code and family.
The numeric codes are the values written to the FIFO and must match the
enumeration the engine firmware was compiled against.

Examples:
  fxpad keys                      # Table output
  fxpad keys -f json              # JSON output
  fxpad keys -f yaml              # YAML output`,
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)

	keysCmd.Flags().StringVarP(&keysFormat, "format", "f", "table", "Output format (table, json, yaml)")
}

func runKeys(cmd *cobra.Command, args []string) error {
	entries := keys.All()

	switch strings.ToLower(keysFormat) {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(entries)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCODE\tFAMILY")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t%s\n", e.Name, e.Code, e.Family)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", keysFormat)
	}
}
