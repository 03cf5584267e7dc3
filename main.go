package main

import "github.com/echoforge/echoforge-go/cmd"

func main() {
	cmd.Execute()
}
