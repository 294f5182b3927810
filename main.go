// Package main provides the entry point for KALISim.
// KALISim simulates KALI multiplication on a memristor crossbar built on
// the Akita hook framework.
//
// For the full CLI, use: go run ./cmd/kalisim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("KALISim - memristor crossbar multiplication simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: kalisim [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -a, -b     Operands")
	fmt.Println("  -n         Operand width in bits (1-32)")
	fmt.Println("  -scheme    sum-only or carry-save")
	fmt.Println("  -config    Path to cost configuration JSON file")
	fmt.Println("  -sweep     Sweep operand pairs at one width")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/kalisim' for the full CLI.")
	fmt.Println("Run 'go run ./cmd/benchmark' for the standard sweeps.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/kalisim' instead.")
	}
}
