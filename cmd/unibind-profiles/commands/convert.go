package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/unibind/unibind-go/pkg/profiles"
)

// ConvertOptions configures the convert command.
type ConvertOptions struct {
	Format string // json, cbor
	Output string
	File   string
}

// CatalogueDoc is the serialized catalogue layout shared by both formats.
type CatalogueDoc struct {
	Profiles map[string]ProfileDoc `json:"profiles" cbor:"profiles"`
}

// ProfileDoc mirrors one profile.
type ProfileDoc struct {
	Title          string                `json:"title" cbor:"title"`
	SubactionPaths []string              `json:"subaction_paths" cbor:"subaction_paths"`
	Subpaths       map[string]SubpathDoc `json:"subpaths" cbor:"subpaths"`
}

// SubpathDoc mirrors one subpath.
type SubpathDoc struct {
	Kind          string   `json:"type" cbor:"type"`
	LocalizedName string   `json:"localized_name" cbor:"localized_name"`
	Side          string   `json:"side,omitempty" cbor:"side,omitempty"`
	Features      []string `json:"features" cbor:"features"`
}

// RunConvert runs the convert command.
func RunConvert(args []string, stdout, stderr io.Writer) int {
	opts, err := parseConvertArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	file := opts.File
	if file == "" {
		file = embeddedName
	}
	reg, err := loadCatalogue(file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	doc := buildCatalogueDoc(reg)

	var data []byte
	switch opts.Format {
	case "cbor":
		mode, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		data, err = mode.Marshal(doc)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		data = append(data, '\n')
	default:
		fmt.Fprintf(stderr, "Error: unknown format %q (json, cbor)\n", opts.Format)
		return exitCommandError
	}

	if opts.Output == "" {
		if _, err := stdout.Write(data); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		return exitSuccess
	}
	if err := os.WriteFile(opts.Output, data, 0644); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	fmt.Fprintf(stdout, "Wrote %d bytes to %s\n", len(data), opts.Output)
	return exitSuccess
}

func buildCatalogueDoc(reg *profiles.Registry) CatalogueDoc {
	doc := CatalogueDoc{Profiles: make(map[string]ProfileDoc, reg.Len())}
	for _, p := range reg.Profiles() {
		pd := ProfileDoc{
			Title:          p.Title,
			SubactionPaths: p.SubactionPaths,
			Subpaths:       make(map[string]SubpathDoc, len(p.Subpaths)),
		}
		for _, name := range p.SubpathNames() {
			sp := p.Subpaths[name]
			features := make([]string, len(sp.Features))
			for i, f := range sp.Features {
				features[i] = f.String()
			}
			pd.Subpaths[name] = SubpathDoc{
				Kind:          sp.Kind,
				LocalizedName: sp.LocalizedName,
				Side:          sp.Side,
				Features:      features,
			}
		}
		doc.Profiles[p.Path()] = pd
	}
	return doc
}

func parseConvertArgs(args []string) (ConvertOptions, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	opts := ConvertOptions{}

	fs.StringVar(&opts.Format, "format", "json", "Output format (json, cbor)")
	fs.StringVar(&opts.Format, "f", "json", "Output format (shorthand)")
	fs.StringVar(&opts.Output, "o", "", "Output file (default stdout)")
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	remaining := fs.Args()
	if len(remaining) > 0 {
		opts.File = remaining[0]
	}
	return opts, nil
}
