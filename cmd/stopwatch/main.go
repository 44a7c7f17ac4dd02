package main

import "github.com/all-dot-files/stopwatch/internal/cli"

func main() {
	cli.Execute()
}
