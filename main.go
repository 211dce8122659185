package main

import "github.com/speedkit/minishsplit/cmd"

func main() {
	cmd.Execute()
}
