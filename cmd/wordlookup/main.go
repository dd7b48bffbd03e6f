// wordlookup looks up vocabulary from a markdown vault against a remote
// vocabulary service and generates story notes from vocabulary entries.
//
// Commands:
//
//	lookup <text>                      look up text as is
//	mark --file F --from L:C --to L:C  link a selection and look it up in context
//	story                              write a story note from random entries
//	serve [--addr]                     run the HTTP bridge for editor integrations
//	watch                              look up entries as they are added
//	history [--limit N]                show recent requests
//	version                            print the version
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var configPath string

	flagSet := pflag.NewFlagSet("wordlookup", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "path to a YAML config file (overrides environment)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(flagSet)
		return nil
	}

	name, rest := flagSet.Arg(0), flagSet.Args()[1:]
	if name == "version" {
		fmt.Println("wordlookup", version)
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (see --help)", name)
	}

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	return cmd(a, rest)
}

func printHelp(flagSet *pflag.FlagSet) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	fmt.Fprintf(os.Stderr, "usage: wordlookup [--config FILE] <command> [flags]\n\n")
	fmt.Fprintf(os.Stderr, "commands: %s, version\n\n", strings.Join(sortedNames(names), ", "))
	flagSet.PrintDefaults()
}
