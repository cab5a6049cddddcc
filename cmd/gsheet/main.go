package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gsheet-api/gsheet-go/commands"
)

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.GetCmd,
	&commands.PutCmd,
}

var options = commands.Options{
	Debug: false,
}

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	if args[0] == "help" {
		help(args[1:])
		return
	}

	cmd := find(args[0])
	if cmd == nil {
		fmt.Printf("\n  ERROR: invalid command '%s'\n", args[0])
		usage()
		os.Exit(1)
	}

	if err := cmd.FlagSet().Parse(args[1:]); err != nil {
		fmt.Printf("\n  ERROR: %v\n\n", err)
		os.Exit(1)
	}

	if err := cmd.Execute(context.Background(), &options); err != nil {
		log.Fatalf("%-5s %v", "ERROR", err)
	}
}

func find(name string) commands.Command {
	for _, cmd := range cli {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

func usage() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] <command> [options]\n", commands.APP)
	fmt.Println()
	fmt.Println("  Commands:")
	fmt.Println()

	for _, cmd := range cli {
		fmt.Printf("    %-10s %s\n", cmd.Name(), cmd.Description())
	}

	fmt.Println()
	fmt.Printf("  Use '%s help <command>' for command specific information\n", commands.APP)
	fmt.Println()
}

func help(args []string) {
	if len(args) == 0 {
		usage()
		return
	}

	cmd := find(args[0])
	if cmd == nil {
		fmt.Printf("\n  ERROR: invalid command '%s'\n", args[0])
		usage()
		os.Exit(1)
	}

	cmd.Help()
}
