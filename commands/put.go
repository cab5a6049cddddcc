package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/sheets/v4"

	gsheet "github.com/gsheet-api/gsheet-go"
)

var PutCmd = Put{
	command: command{
		credentials: "",
		url:         "",
		debug:       false,
	},

	area: "",
	file: "",
}

type Put struct {
	command
	area string
	file string
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Uploads a TSV file to a Google Sheets worksheet"
}

func (cmd *Put) Usage() string {
	return "--credentials <file> --url <url> --range <range> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --url <URL> --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Uploads a TSV file to a Google Sheets worksheet")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println("  Examples:")
	fmt.Println(`    gsheet --debug put --credentials "credentials.json" \`)
	fmt.Println(`                       --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                       --range "Summary!A1:E" \`)
	fmt.Println(`                       --file "example.tsv"`)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'Summary!A1:E'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file")

	return flagset
}

func (cmd *Put) Execute(ctx context.Context, options *Options) error {
	cmd.debug = options.Debug

	if strings.TrimSpace(cmd.area) == "" {
		return fmt.Errorf("--range is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	header, data, err := tsvToSheet(f, cmd.area)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%v)", err)
	}

	client, spreadsheetID, err := cmd.client(gsheet.ScopeSpreadsheets)
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("spreadsheet - ID:%s  range:%s", spreadsheetID, cmd.area)
	}

	ranges := []*sheets.ValueRange{header}
	if data != nil {
		ranges = append(ranges, data)
	} else {
		warnf("TSV file %v has no data rows", cmd.file)
	}

	if _, err := client.BatchUpdateValues(ctx, spreadsheetID, ranges, nil); err != nil {
		return err
	}

	infof("uploaded TSV file %v to %v", cmd.file, cmd.area)

	return nil
}
