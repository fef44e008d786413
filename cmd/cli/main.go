package main

import "github.com/veritasproject/veritas/pkg/cli"

func main() {
	cli.Execute()
}
