package commands

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	gsheet "github.com/gsheet-api/gsheet-go"
)

const APP = "gsheet"
const VERSION = "v0.1.0"

type Options struct {
	Debug bool
}

type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(ctx context.Context, options *Options) error
}

// command is the set of flags common to all the CLI commands.
type command struct {
	credentials string
	url         string
	debug       bool
}

func (cmd *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the service account key file")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")

	return flagset
}

// client builds an authenticated client for the spreadsheet identified by
// the --url flag.
func (cmd *command) client(scope string) (*gsheet.Client, string, error) {
	if strings.TrimSpace(cmd.credentials) == "" {
		return nil, "", fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(cmd.url) == "" {
		return nil, "", fmt.Errorf("--url is a required option")
	}

	spreadsheetID, err := gsheet.SpreadsheetIDFromURL(cmd.url)
	if err != nil {
		return nil, "", err
	}

	client, err := gsheet.New(gsheet.Config{
		Credentials: cmd.credentials,
		Scope:       scope,
		Debug:       cmd.debug,
	})
	if err != nil {
		return nil, "", fmt.Errorf("authentication/authorization error (%v)", err)
	}

	return client, spreadsheetID, nil
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-12s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("    --debug        Displays internal information for diagnosing errors")
	fmt.Println()
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
