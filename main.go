package main

import "github.com/sjzsdu/codeide/cmd"

func main() {
	cmd.Execute()
}
