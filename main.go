// Copyright © 2025 The declnav authors

// Command declnav inspects reference resolution over fixture syntax trees.
package main

import "github.com/declnav/declnav/cmd"

func main() {
	cmd.Execute()
}
