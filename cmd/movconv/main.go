package main

import "github.com/wedsite/wedsite/cmd/movconv/cmd"

func main() {
	cmd.Execute()
}
