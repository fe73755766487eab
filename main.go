package main

import "github.com/javelin-ide/javelin/cmd"

func main() {
	cmd.Execute()
}
