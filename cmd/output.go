package cmd

import (
	"fmt"
	"os"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// Commands with multi-line output use these to keep icon usage and
// indentation consistent.
//
// Icon semantics:
//   ✓  success / healthy
//   ⚠  warning               (written to stderr)
//   -  not found / missing
//   ~  neutral info

// printSection prints a top-level section header, e.g. "=== Store ===".
func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printOK prints a success line.
func printOK(name, msg string) {
	if name == "" {
		fmt.Printf("  ✓  %s\n", msg)
	} else {
		fmt.Printf("  ✓  [%s] %s\n", name, msg)
	}
}

// printWarn prints a warning line to stderr.
func printWarn(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ⚠  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ⚠  [%s] %s\n", name, msg)
	}
}

// printMiss prints a not-found / missing line.
func printMiss(name, msg string) {
	if name == "" {
		fmt.Printf("  -  %s\n", msg)
	} else {
		fmt.Printf("  -  [%s] %s\n", name, msg)
	}
}

// printInfo prints a neutral informational line.
func printInfo(name, msg string) {
	if name == "" {
		fmt.Printf("  ~  %s\n", msg)
	} else {
		fmt.Printf("  ~  [%s] %s\n", name, msg)
	}
}
