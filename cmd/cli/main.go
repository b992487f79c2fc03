package main

import "github.com/crediflow/lsctl/pkg/cli"

func main() {
	cli.Execute()
}
