package main

import "github.com/xll-gen/build-payload/cmd"

// main is the entry point of the build_payload CLI.
// It executes the root command which parses flags and writes the payload.
func main() {
	cmd.Execute()
}
