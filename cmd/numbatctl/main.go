// Command numbatctl evaluates and converts quantity expressions from
// the command line.
//
//	numbatctl "5 m/s"
//	numbatctl "5 m/s" "km/h"
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/T1mVo/numbat/parser"
	"github.com/T1mVo/numbat/registry"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <quantity> [<target unit>]\n", os.Args[0])
	}
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		flag.Usage()
		os.Exit(2)
	}

	reg := registry.New()

	quantity, err := parser.ParseQuantity(args[0], reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "numbatctl: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 1 {
		fmt.Println(quantity.FullSimplify().String())
		return
	}

	target, err := parser.ParseUnit(args[1], reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "numbatctl: %v\n", err)
		os.Exit(1)
	}
	converted, err := quantity.ConvertTo(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "numbatctl: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(converted.String())
}
