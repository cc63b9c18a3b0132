// Command fieldconv converts single field values through a column
// definition, for checking a column's settings from the shell.
//
//	fieldconv parse --type double --culture de-DE --format N2 "1234,5"
//	fieldconv format --type double --culture de-DE --format N2 1234.5
//	cut -d';' -f3 export.csv | fieldconv parse -t decimal -c fr-FR
//
// parse reads text in the column's culture and prints the value formatted
// back through the same column, so its culture and output pattern apply to
// the output too. format reads invariant text and prints it in the column's
// culture and pattern. Values come from the arguments, or from stdin lines
// when none are given.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Type         string   `short:"t" long:"type" description:"Column type (see --list)" default:"double"`
	Culture      string   `short:"c" long:"culture" description:"Culture name, e.g. de-DE (default: invariant)"`
	Styles       string   `short:"s" long:"styles" description:"Accepted number styles, e.g. Float|AllowThousands"`
	Format       string   `short:"f" long:"format" description:"Output pattern, e.g. N2, or D/N/B/P for guids"`
	Null         []string `short:"n" long:"null" description:"Null token; repeat for alternates, the first is written"`
	Trim         string   `long:"trim" description:"Trim policy: whitespace, none, chars, leading or trailing"`
	TrimChars    string   `long:"trim-chars" description:"Cutset for the chars, leading and trailing trim policies"`
	Clean        bool     `long:"clean" description:"Strip spreadsheet quoting and BOMs before parsing"`
	TrueString   string   `long:"true" description:"Text for true in boolean columns"`
	FalseString  string   `long:"false" description:"Text for false in boolean columns"`
	Layout       string   `long:"layout" description:"Go time layout for datetime output"`
	Location     string   `long:"location" description:"Time zone for datetime columns without an offset"`
	List         bool     `short:"l" long:"list" description:"List column types and exit"`
	Verbose      []bool   `short:"v" long:"verbose" description:"Show verbose debug information"`
	Args         struct {
		Mode   string   `positional-arg-name:"parse|format"`
		Values []string `positional-arg-name:"value"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	os.Exit(run(&opts, os.Stdin, os.Stdout, os.Stderr))
}
