package main

import "github.com/nfrund/alphaprime/cmd/alphaprime-cli/cmd"

func main() {
	cmd.Execute()
}
