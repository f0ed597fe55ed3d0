// This is the main driver for the Patito toolchain: it reads a source
// file, compiles it, and -- if compilation succeeds -- runs the
// resulting program on the virtual machine, writing its cout output to
// stdout.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/felipeyepez/patito/compiler"
	"github.com/felipeyepez/patito/vm"
)

func main() {
	debug := flag.Bool("debug", false, "Print the variable table, constant table, and quadruples before running.")
	dump := flag.Bool("dump", false, "Print the final VM memory image after running.")
	timeout := flag.Duration("timeout", 0, "Abort execution after this long (0 disables the timeout).")
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: patito [-debug] [-dump] [-timeout dur] <file.pat>\n")
		os.Exit(1)
	}

	path := flag.Args()[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %s\n", path, err)
		os.Exit(1)
	}

	prog, err := compiler.Compile(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling %s: %s\n", path, err)
		os.Exit(1)
	}

	for _, w := range prog.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if *debug {
		prog.Dump(os.Stdout)
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	machine, err := vm.New(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing the virtual machine: %s\n", err)
		os.Exit(1)
	}

	err = machine.Run(ctx, os.Stdout)
	if *dump {
		machine.DumpMemory(os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running %s: %s\n", path, err)
		os.Exit(1)
	}
}
