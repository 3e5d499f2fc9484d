// Command validate compares two report files for byte equality and exits
// non-zero when they differ.
//
// Usage:
//
//	validate <output_a.csv> <output_b.csv>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"salespipe/internal/valcheck"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <output_a.csv> <output_b.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("validate ")

	res, err := valcheck.Compare(flag.Arg(0), flag.Arg(1))
	if err != nil {
		log.Fatalf("compare: %v", err)
	}
	log.Print(res.Describe())
	if !res.Match {
		os.Exit(1)
	}
}
