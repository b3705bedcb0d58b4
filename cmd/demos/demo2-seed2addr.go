package main

import (
	"fmt"
	"log"

	colewallet "github.com/jasony/cole-wallet-core"
)

func main() {
	mnemonic, err := colewallet.NewMnemonic(128)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Mnemonic:\n%s\n\n", mnemonic)

	w, err := colewallet.NewWalletFromMnemonic(mnemonic, "", nil)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	account, err := w.NewAccount("default", 0)
	if err != nil {
		log.Fatal(err)
	}

	addrs, err := account.Addresses(false, 0, 2, nil)
	if err != nil {
		log.Fatal(err)
	}

	for i, addr := range addrs {
		fmt.Printf("Address %d: %s\n", i, addr.String())
	}
}
