package main

import "wattwise/cmd"

func main() {
	cmd.Execute()
}
