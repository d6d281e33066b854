package main

import "github.com/AbhijeetP21/multi-agent-data-wrangler/cmd"

func main() {
	cmd.Execute()
}
