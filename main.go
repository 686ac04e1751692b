package main

import "github.com/CraigKelly/tgibbs/cmd"

func main() {
	cmd.Execute()
}
