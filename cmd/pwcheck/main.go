package main

import "github.com/jwalitptl/passmeter/internal/cli"

func main() {
	cli.Execute()
}
