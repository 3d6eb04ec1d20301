// Package main is the entry point for the otime CLI.
package main

import "otime.dev/pkg/otime/cmd"

func main() {
	cmd.Execute()
}
