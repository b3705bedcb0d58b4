package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Inspect signed transactions",
}

var txShowCmd = &cobra.Command{
	Use:   "show <hex-cbor>",
	Short: "Decode and print a signed transaction's CBOR structure",
	Long: `Decode the hex-encoded CBOR of a signed transaction ([tx, [witness...]],
spec §4.5) and print its generic structure for inspection. This is a
read-only debugging aid; it does not re-verify witnesses or balances.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("argument is not valid hex: %w", err)
		}

		var decoded interface{}
		if err := cbor.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("failed to decode CBOR: %w", err)
		}

		fmt.Printf("%d bytes decoded:\n%#v\n", len(raw), decoded)
		return nil
	},
}

func init() {
	txCmd.AddCommand(txShowCmd)
	rootCmd.AddCommand(txCmd)
}
