// Package main provides the herdsos server and its maintenance commands.
package main

func main() {
	Execute()
}
