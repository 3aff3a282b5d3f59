// Command bookstore runs the record interpreter CLI.
package main

import "github.com/pagecroft/bookstore/internal/cli"

func main() {
	cli.Execute()
}
