// Command orgtree validates organisation chart exports and turns them into
// a browsable reporting hierarchy.
package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
