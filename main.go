package main

import "workx.com/workx/cmd"

func main() {
	cmd.Execute()
}
