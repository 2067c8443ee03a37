// Command scorecardctl inspects, converts and edits scorecard catalogs, and
// scores answer files offline against them.
package main

import "os"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
