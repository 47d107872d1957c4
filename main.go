package main

import "github.com/mono-c-glitch/Absolute-RSA-System/cmd"

func main() {
	cmd.Execute()
}
