package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	in          string
	out         string
	title       string
	attribution string

	diagramURL     string
	diagramKey     string
	diagramTimeout time.Duration

	verbose bool
}

func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("specdoc", flag.ContinueOnError)

	f := &cliFlags{}
	fs.StringVarP(&f.in, "in", "i", "", "payload file (.json, .yaml, .yml)")
	fs.StringVarP(&f.out, "out", "o", "specification.docx", "output .docx path")
	fs.StringVar(&f.title, "title", "", "document title (overrides the default)")
	fs.StringVar(&f.attribution, "attribution", "", "trailing attribution paragraph")
	fs.StringVar(&f.diagramURL, "diagram-url", "", "diagram agent base URL (empty disables diagrams)")
	fs.StringVar(&f.diagramKey, "diagram-key", "", "diagram agent API key")
	fs.DurationVar(&f.diagramTimeout, "timeout", 30*time.Second, "diagram agent timeout")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log build details to stderr")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	if f.in == "" {
		return nil, fmt.Errorf("--in is required\n\n%s", fs.FlagUsages())
	}
	return f, nil
}
