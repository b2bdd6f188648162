package cmd

import (
	"fmt"
	"os"

	"github.com/lumberg/petitions/internal/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "petitions",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Drains pending petition signatures and validations from RabbitMQ into
Postgres and serves the read-only signatures API.
Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		newDBCmd(),
		newEnvCmd(),
		newServerCmd(),
		newWorkerCmd(),
		newQueuesCmd(),
	)
}
