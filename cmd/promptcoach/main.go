package main

import "github.com/moseskolleh/promptcoach/internal/cli"

func main() {
	cli.Execute()
}
