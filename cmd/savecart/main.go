// Command savecart drives the save-for-later flow from a terminal: it saves
// selected cart lines, restores a saved list into a storefront cart and shows
// the locally cached snapshot.
package main

import (
	"os"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	if err := newRootCmd(version).Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
