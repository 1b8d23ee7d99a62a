package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/unibind/unibind-go/pkg/profiles"
	"github.com/unibind/unibind-go/pkg/xr"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Format  string // text, json
	Profile string // filter by profile path
	File    string
}

// ProfileOutput represents one profile for display.
type ProfileOutput struct {
	Path           string          `json:"path"`
	Title          string          `json:"title"`
	SubactionPaths []string        `json:"subaction_paths"`
	Subpaths       []SubpathOutput `json:"subpaths"`
	GodActions     int             `json:"god_actions"`
	GodBindings    int             `json:"god_bindings"`
}

// SubpathOutput represents one subpath with its derived god actions.
type SubpathOutput struct {
	Path          string          `json:"path"`
	Kind          string          `json:"kind"`
	LocalizedName string          `json:"localized_name"`
	Side          string          `json:"side,omitempty"`
	Features      []FeatureOutput `json:"features"`
}

// FeatureOutput represents one feature and its derived action kind.
type FeatureOutput struct {
	Tag        string `json:"tag"`
	ActionType string `json:"action_type"`
	Actionable bool   `json:"actionable"`
}

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	opts, err := parseShowArgs(args)
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

	var outputs []ProfileOutput
	for _, p := range reg.Profiles() {
		if opts.Profile != "" && p.Path() != opts.Profile {
			continue
		}
		outputs = append(outputs, buildProfileOutput(p))
	}
	if opts.Profile != "" && len(outputs) == 0 {
		fmt.Fprintf(stderr, "Error: profile %s not in catalogue\n", opts.Profile)
		return exitCommandError
	}

	switch opts.Format {
	case "json":
		data, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Fprintln(stdout, string(data))
	default:
		printShowText(stdout, outputs)
	}
	return exitSuccess
}

// buildProfileOutput derives the same god-action plan the layer builds at
// instance creation: one action per actionable subpath/feature pair, one
// binding per side-allowed subaction path of each input action.
func buildProfileOutput(p *profiles.Profile) ProfileOutput {
	output := ProfileOutput{
		Path:           p.Path(),
		Title:          p.Title,
		SubactionPaths: p.SubactionPaths,
	}

	for _, name := range p.SubpathNames() {
		sp := p.Subpaths[name]
		so := SubpathOutput{
			Path:          name,
			Kind:          sp.Kind,
			LocalizedName: sp.LocalizedName,
			Side:          sp.Side,
		}
		for _, f := range sp.Features {
			kind := f.ActionType()
			so.Features = append(so.Features, FeatureOutput{
				Tag:        f.String(),
				ActionType: kind.String(),
				Actionable: kind != xr.ActionTypeUnknown,
			})
			if kind == xr.ActionTypeUnknown {
				continue
			}
			output.GodActions++
			if !kind.IsInput() {
				continue
			}
			for _, sap := range p.SubactionPaths {
				if sp.AllowsSubactionPath(sap) {
					output.GodBindings++
				}
			}
		}
		output.Subpaths = append(output.Subpaths, so)
	}
	return output
}

func printShowText(w io.Writer, outputs []ProfileOutput) {
	for i, p := range outputs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", p.Path)
		fmt.Fprintf(w, "  Title: %s\n", p.Title)
		fmt.Fprintf(w, "  Subaction paths: %s\n", strings.Join(p.SubactionPaths, ", "))
		for _, sp := range p.Subpaths {
			side := ""
			if sp.Side != "" {
				side = " (" + sp.Side + " only)"
			}
			fmt.Fprintf(w, "  %s [%s] %s%s\n", sp.Path, sp.Kind, sp.LocalizedName, side)
			for _, f := range sp.Features {
				marker := f.ActionType
				if !f.Actionable {
					marker = "not actionable"
				}
				fmt.Fprintf(w, "    %-10s -> %s\n", f.Tag, marker)
			}
		}
		fmt.Fprintf(w, "  God actions: %d, god bindings: %d\n", p.GodActions, p.GodBindings)
	}
	fmt.Fprintf(w, "\nTotal: %d profiles, %d god actions, %d god bindings\n",
		len(outputs), sumActions(outputs), sumBindings(outputs))
}

func sumActions(outputs []ProfileOutput) int {
	n := 0
	for _, p := range outputs {
		n += p.GodActions
	}
	return n
}

func sumBindings(outputs []ProfileOutput) int {
	n := 0
	for _, p := range outputs {
		n += p.GodBindings
	}
	return n
}

func parseShowArgs(args []string) (ShowOptions, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	opts := ShowOptions{}

	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")
	fs.StringVar(&opts.Profile, "profile", "", "Show only the named profile")
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
