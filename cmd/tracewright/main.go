// Package main is the entry point for the tracewright CLI.
package main

func main() {
	Execute()
}
