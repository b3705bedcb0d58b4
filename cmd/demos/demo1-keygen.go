package main

import (
	"fmt"
	"log"

	colewallet "github.com/jasony/cole-wallet-core"
)

func main() {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	w, err := colewallet.NewWalletFromMnemonic(mnemonic, "", nil)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	account, err := w.NewAccount("default", 0)
	if err != nil {
		log.Fatal(err)
	}

	addrs, err := account.Addresses(false, 0, 1, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Address: %s\n", addrs[0].String())

	xpub := account.XPub()
	fmt.Printf("Account xpub point: %x\n", xpub.Point())
}
