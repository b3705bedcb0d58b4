package main

import (
	"fmt"

	colewallet "github.com/jasony/cole-wallet-core"
)

func main() {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	w, err := colewallet.NewWalletFromMnemonic(mnemonic, "", nil)
	if err != nil {
		panic(err)
	}
	defer w.Close()

	account, err := w.NewAccount("default", 0)
	if err != nil {
		panic(err)
	}

	first, err := account.Addresses(false, 0, 1, nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Address at index 0: %s\n", first[0].String())

	tenth, err := account.Addresses(false, 9, 1, nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Address at index 9: %s\n", tenth[0].String())

	if first[0].String() == tenth[0].String() {
		panic("distinct indices produced the same address")
	}
	fmt.Println("Successfully derived two distinct addresses from the same account.")
}
