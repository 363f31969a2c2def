package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ryanm101/biblioteca/internal/links"
)

func handleContactCommand(args []string) {
	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	printOnly := fs.Bool("print", false, "print the mailto link instead of opening it")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	rest := fs.Args()
	if len(rest) < 3 {
		fmt.Println("Usage: biblioteca contact [--print] <name> <email> <message>")
		os.Exit(1)
	}

	l := links.FromConfig(cfg.Links)
	target := l.ContactMailto(rest[0], rest[1], strings.Join(rest[2:], " "))
	openOrPrint(target, *printOnly)
}

func handleNewsletterCommand() {
	openOrPrint(links.FromConfig(cfg.Links).Newsletter(), false)
}

func openOrPrint(target string, printOnly bool) {
	if outputCfg.JSON {
		PrintResult(map[string]string{"url": target})
		return
	}
	if printOnly {
		fmt.Println(target)
		return
	}
	if err := links.Open(target); err != nil {
		PrintError("Error: %v\n", err)
		fmt.Println(target)
		os.Exit(1)
	}
	PrintInfo("Opened %s\n", target)
}
