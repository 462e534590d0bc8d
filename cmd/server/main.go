package main

import "github.com/sheikh-saqib/ledger-bot/internal/cli"

func main() {
	cli.Execute()
}
