package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/lumberg/petitions/internal/config"
	"github.com/spf13/cobra"
)

// newEnvCmd prints the resolved service configuration. Sensitive fields are
// excluded via their json tags.
func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the resolved service configuration",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				fmt.Println(err)
				return
			}

			fmt.Println(string(out))
		},
	}
}
