package main

import (
	"os"

	"github.com/JoeShih716/go-account-desk/cmd/bankctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
