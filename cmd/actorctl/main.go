// Command actorctl is a small operational CLI around the demo actors in
// internal/demoactor: it spawns a pool of them sharing one kill switch and
// lets an operator observe, kill, and quit them interactively.
package main

import (
	"fmt"
	"os"

	"github.com/archon-search/actorcore/cmd/actorctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
