package main

import "github.com/philipparndt/modelview/cmd"

func main() {
	cmd.Execute()
}
