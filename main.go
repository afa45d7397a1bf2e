package main

import "github.com/naka-gawa/devfolio/cmd"

func main() {
	cmd.Execute()
}
