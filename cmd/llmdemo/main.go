// llmdemo is a small CLI exercising the modelkit library: resolve a backend
// from the environment, ask it a question, and print the reasoning trace and
// final answer.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
