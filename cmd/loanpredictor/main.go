package main

import "github.com/aouyang1/go-loanpredictor/cli"

func main() {
	cli.Execute()
}
