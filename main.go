package main

import "github.com/evanmarlow/givesite/cmd"

func main() {
	cmd.Execute()
}
