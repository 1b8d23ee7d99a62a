package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/unibind/unibind-go/pkg/profiles"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

const embeddedName = "(embedded)"

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	JSON  bool
	Files []string
}

// ValidationOutput represents the validation result for one catalogue.
type ValidationOutput struct {
	Valid    bool   `json:"valid"`
	Profiles int    `json:"profiles,omitempty"`
	Error    string `json:"error,omitempty"`
}

// RunValidate runs the validate command. Without files it validates the
// embedded catalogue.
func RunValidate(args []string, stdout, stderr io.Writer) int {
	opts, err := parseValidateArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	files := opts.Files
	if len(files) == 0 {
		files = []string{embeddedName}
	}

	hasErrors := false
	results := make(map[string]*ValidationOutput)

	for _, file := range files {
		result := validateCatalogue(file)
		results[file] = result
		if !result.Valid {
			hasErrors = true
		}
		if !opts.JSON {
			if result.Valid {
				fmt.Fprintf(stdout, "%s: OK (%d profiles)\n", file, result.Profiles)
			} else {
				fmt.Fprintf(stdout, "%s: FAILED: %s\n", file, result.Error)
			}
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if hasErrors {
		return exitValidation
	}
	return exitSuccess
}

func validateCatalogue(file string) *ValidationOutput {
	reg, err := loadCatalogue(file)
	if err != nil {
		return &ValidationOutput{Valid: false, Error: err.Error()}
	}
	return &ValidationOutput{Valid: true, Profiles: reg.Len()}
}

// loadCatalogue parses a catalogue file, or the embedded one for the
// sentinel name.
func loadCatalogue(file string) (*profiles.Registry, error) {
	if file == embeddedName {
		return profiles.Load()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return profiles.Parse(data)
}

func parseValidateArgs(args []string) (ValidateOptions, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	opts := ValidateOptions{}

	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.Files = fs.Args()
	return opts, nil
}
