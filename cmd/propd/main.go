package main

import "github.com/propasset/propd/internal/cli"

func main() {
	cli.Execute()
}
