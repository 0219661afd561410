// Command rtable fits, renders and inspects responsive tables in HTML files.
package main

import "os"

func main() {
	if err := RootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
