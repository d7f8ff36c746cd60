package cli

import (
	"github.com/spf13/cobra"
)

// configCommand prints the effective configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

The output can be saved as sankey.toml and edited. Without a config file
the printed values are empty and the built-in defaults apply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.config.Encode(cmd.OutOrStdout())
		},
	}
}
