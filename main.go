package main

import "github.com/gitmesam/godbg/cmd"

func main() {
	cmd.Execute()
}
