package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasony/cole-wallet-core"
)

var addrCmd = &cobra.Command{
	Use:   "addr",
	Short: "Inspect protocol addresses",
}

var addrVerifyCmd = &cobra.Command{
	Use:   "verify <address>",
	Short: "Check whether a base58 string is a well-formed protocol address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := args[0]
		if !colewallet.IsValidAddress(addr) {
			fmt.Printf("%s: invalid\n", addr)
			return fmt.Errorf("address is not well-formed")
		}

		parsed, err := colewallet.ParseAddress(addr)
		if err != nil {
			return fmt.Errorf("address verified as well-formed but failed to parse: %w", err)
		}

		root := parsed.RootHash()
		fmt.Printf("%s: valid\n", addr)
		fmt.Printf("  root hash: %x\n", root[:])
		return nil
	},
}

func init() {
	addrCmd.AddCommand(addrVerifyCmd)
	rootCmd.AddCommand(addrCmd)
}
