package main

import "github.com/dkaranikas/komanda/cmd"

func main() {
	cmd.Execute()
}
