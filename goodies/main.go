// Command goodies plays with fixed-capacity arrays from the command line.
package main

import "github.com/bobbthebuilder/goodies/goodies/cmd"

func main() {
	cmd.Execute()
}
