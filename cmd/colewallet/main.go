// Command colewallet is the CLI front end for the wallet core: mnemonic
// generation, address derivation, and read-only transaction/block
// inspection.
package main

import (
	"fmt"
	"os"

	"github.com/jasony/cole-wallet-core/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
