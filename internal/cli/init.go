package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/config"
)

func newInitCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a " + config.FileName + " in the target directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = "."
			}
			path := filepath.Join(dir, config.FileName)
			return config.Save(path, config.Default())
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write config file to")
	return cmd
}
