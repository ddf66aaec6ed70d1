// Command coven queries a vampire lineage from the command line.
package main

import "github.com/mesh-intelligence/coven/internal/cli"

func main() {
	cli.Execute()
}
