// Package main provides the entry point for the pagetitle CLI.
//
// pagetitle fetches a web page and prints the content of its <title>
// element. It is a small lookup tool for scripts and humans alike.
//
// Usage:
//
//	pagetitle <url>
//	pagetitle history
//
// See --help for all available options.
package main

// main is the entry point for pagetitle.
func main() {
	Execute()
}
