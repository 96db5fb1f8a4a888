package main

import "github.com/kumolabai/nftgo-mcp/cmd"

func main() {
	cmd.Execute()
}
