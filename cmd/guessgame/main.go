package main

import "github.com/mcoot/guessgame/internal/cli"

func main() {
	cli.Execute()
}
