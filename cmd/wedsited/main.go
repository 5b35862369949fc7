package main

import "github.com/wedsite/wedsite/cmd/wedsited/cmd"

func main() {
	cmd.Execute()
}
