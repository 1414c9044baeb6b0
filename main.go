package main

import "github.com/sadopc/dayzen/internal/cli"

func main() {
	cli.Execute()
}
