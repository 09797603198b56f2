package main

import "github.com/cameronsjo/fabricdocs/internal/cmd"

func main() {
	cmd.Execute()
}
