package main

import "epubstamp/cmd/epubstamp/commands"

func main() {
	commands.Execute()
}
