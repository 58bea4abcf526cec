package main

import "github.com/mindfulorg/smartfs/cmd"

func main() {
	cmd.Execute()
}
