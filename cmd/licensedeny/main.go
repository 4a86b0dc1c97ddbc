// Command licensedeny gates build pipelines on dependency license,
// ban, and source policy compliance.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
