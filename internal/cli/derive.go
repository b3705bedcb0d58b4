package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasony/cole-wallet-core"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive addresses from a mnemonic",
	Long: `Derive protocol addresses from a BIP-39 mnemonic phrase.

An account is a hardened child of the wallet root; addresses are derived
beneath it on the external (receiving) or internal (change) chain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mnemonic, _ := cmd.Flags().GetString("mnemonic")
		account, _ := cmd.Flags().GetUint32("account")
		fromIndex, _ := cmd.Flags().GetUint32("from")
		count, _ := cmd.Flags().GetUint32("count")
		internal, _ := cmd.Flags().GetBool("internal")

		if mnemonic == "" {
			return fmt.Errorf("mnemonic phrase is required")
		}

		w, err := colewallet.NewWalletFromMnemonic(mnemonic, "", nil)
		if err != nil {
			return fmt.Errorf("failed to create wallet from mnemonic: %w", err)
		}
		defer w.Close()

		acc, err := w.NewAccount("", account)
		if err != nil {
			return fmt.Errorf("failed to derive account %d: %w", account, err)
		}
		log.Debugf("derived account %d", account)

		addrs, err := acc.Addresses(internal, fromIndex, count, nil)
		if err != nil {
			return fmt.Errorf("failed to derive addresses: %w", err)
		}

		chain := "external"
		if internal {
			chain = "internal"
		}
		fmt.Printf("Account %d, %s chain, indices %d..%d:\n\n", account, chain, fromIndex, fromIndex+count-1)
		for i, addr := range addrs {
			fmt.Printf("  [%d] %s\n", fromIndex+uint32(i), addr.String())
		}

		return nil
	},
}

func init() {
	deriveCmd.Flags().StringP("mnemonic", "m", "", "Mnemonic phrase (required)")
	deriveCmd.Flags().Uint32("account", 0, "Account index")
	deriveCmd.Flags().Uint32("from", 0, "Starting address index")
	deriveCmd.Flags().Uint32P("count", "c", 1, "Number of addresses to derive")
	deriveCmd.Flags().Bool("internal", false, "Derive on the internal (change) chain instead of external")

	deriveCmd.MarkFlagRequired("mnemonic")
	rootCmd.AddCommand(deriveCmd)
}
