package main

import "boatsim/internal/cli"

func main() {
	cli.Execute()
}
