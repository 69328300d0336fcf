package main

import "github.com/unfaiyted/godoc-swagger/internal/cli"

func main() {
	cli.Execute()
}
