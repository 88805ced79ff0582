package main

import (
	"github.com/manifest-network/tmpcoin/cmd/tmpcoin"
)

func main() {
	tmpcoin.Execute()
}
