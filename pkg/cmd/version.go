package cmd

import (
	"github.com/spf13/cobra"

	"github.com/leosykes117/archeota/pkg/config"
)

func (c *command) initVersionCmd() {
	c.root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version number",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(config.Version())
		},
	})
}
