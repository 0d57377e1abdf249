package main

import "textparser/internal/cli"

func main() {
	cli.Execute()
}
