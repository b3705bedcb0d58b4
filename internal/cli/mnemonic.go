package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasony/cole-wallet-core"
)

var mnemonicCmd = &cobra.Command{
	Use:   "mnemonic",
	Short: "Generate a new BIP-39 mnemonic phrase",
	Long: `Generate a new cryptographically secure mnemonic phrase that can be used
to create a hierarchical deterministic wallet.

The mnemonic follows the BIP-39 standard and can be fed to "colewallet derive"
to produce accounts and addresses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bits, _ := cmd.Flags().GetInt("bits")

		phrase, err := colewallet.NewMnemonic(bits)
		if err != nil {
			return fmt.Errorf("failed to generate mnemonic: %w", err)
		}

		log.Debugf("generated %d-bit mnemonic", bits)
		fmt.Printf("Mnemonic phrase:\n%s\n", phrase)
		fmt.Printf("\nWARNING: store this phrase safely. Anyone with it controls every\n")
		fmt.Printf("address derived from it.\n")

		return nil
	},
}

func init() {
	mnemonicCmd.Flags().IntP("bits", "b", 128, "Entropy bits (128, 160, 192, 224, or 256)")
	rootCmd.AddCommand(mnemonicCmd)
}
