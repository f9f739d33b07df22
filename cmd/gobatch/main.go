// Command gobatch runs declarative batch job definitions.
package main

import "github.com/aceteam-ai/gobatch/cmd"

func main() {
	cmd.Execute()
}
