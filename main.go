package main

import "Stowed/cmd/cli"

func main() {
	cli.Execute()
}
