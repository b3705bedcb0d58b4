package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasony/cole-wallet-core"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Inspect protocol blocks",
}

var blockShowCmd = &cobra.Command{
	Use:   "show <hex-cbor>",
	Short: "Decode a block and print its header hash and transaction count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("argument is not valid hex: %w", err)
		}

		blk, err := colewallet.DecodeBlock(raw)
		if err != nil {
			return fmt.Errorf("failed to decode block: %w", err)
		}

		header := blk.Header()
		fmt.Printf("kind:           %d\n", header.Kind())
		fmt.Printf("header hash:    %s\n", header.HeaderHash())
		fmt.Printf("previous hash:  %s\n", header.PreviousHeaderHash())

		txs, err := blk.GetTransactions()
		if err != nil {
			fmt.Printf("transactions:   none (%v)\n", err)
			return nil
		}
		fmt.Printf("transactions:   %d\n", len(txs))
		return nil
	},
}

func init() {
	blockCmd.AddCommand(blockShowCmd)
	rootCmd.AddCommand(blockCmd)
}
