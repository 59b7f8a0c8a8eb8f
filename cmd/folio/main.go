package main

import "github.com/filipexyz/folio/internal/cli/cmd"

func main() {
	cmd.Execute()
}
