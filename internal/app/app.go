package app

import (
	"github.com/spf13/cobra"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "cryptoscan", Short: "Rule-based cryptographic API misuse detector for Java source"}
	cli.AddCommands(root)
	return root
}
