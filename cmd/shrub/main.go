// Command shrub manages item types and the items spawned from them.
package main

import "github.com/mesh-intelligence/shrub/internal/cli"

func main() {
	cli.Execute()
}
