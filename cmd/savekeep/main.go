// Command savekeep backs up and restores handheld console save data.
package main

import "github.com/mesh-intelligence/savekeep/internal/cli"

func main() {
	cli.Execute()
}
