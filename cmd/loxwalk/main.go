// Command loxwalk is the loxwalk interpreter's command-line entry
// point.
package main

import "github.com/kristofer/loxwalk/cmd/loxwalk/cmd"

func main() {
	cmd.Execute()
}
