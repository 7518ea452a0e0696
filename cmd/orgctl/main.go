package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"org-structure-service/internal/apperror"
	"org-structure-service/internal/demo"
	"org-structure-service/internal/org"
)

const usage = `usage: orgctl <structure|export> [flags]

  structure   print the indented organization outline
  export      write the organization tree as JSON or YAML
`

type options struct {
	format string
	output string
	input  string
	orgID  string
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("orgctl")
	}
}

func run(args []string, stdout io.Writer) (err error) {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage)
	}
	command := args[0]
	if command != "structure" && command != "export" {
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}

	var opts options
	flags := pflag.NewFlagSet("orgctl "+command, pflag.ContinueOnError)
	flags.StringVar(&opts.format, "format", "json", "Export format: json or yaml.")
	flags.StringVarP(&opts.output, "output", "o", "", "Write to this file instead of stdout.")
	flags.StringVarP(&opts.input, "input", "i", "", "Read organizations from a JSON export instead of the built-in samples.")
	flags.StringVar(&opts.orgID, "org", "", "Only process the organization with this id.")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}
	if command == "structure" && flags.Changed("format") {
		return apperror.New(apperror.CodeValidation, "--format applies to export only")
	}
	if opts.format != "json" && opts.format != "yaml" {
		return apperror.Newf(apperror.CodeValidation, "unsupported format %q", opts.format)
	}

	organizations, err := loadOrganizations(opts)
	if err != nil {
		return err
	}

	out := stdout
	if opts.output != "" {
		file, createErr := os.Create(opts.output)
		if createErr != nil {
			return fmt.Errorf("create %s: %w", opts.output, createErr)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", opts.output, closeErr)
			}
		}()
		out = file
	}

	if command == "structure" {
		for i, organization := range organizations {
			if i > 0 {
				if _, err := fmt.Fprintln(out); err != nil {
					return err
				}
			}
			if err := organization.PrintStructure(out); err != nil {
				return err
			}
		}
		return nil
	}

	exports := make([]org.OrganizationExport, 0, len(organizations))
	for _, organization := range organizations {
		exports = append(exports, organization.Export())
	}
	return writeExports(out, opts.format, exports)
}

func loadOrganizations(opts options) ([]*org.Organization, error) {
	var organizations []*org.Organization
	if opts.input == "" {
		built, err := demo.Organizations()
		if err != nil {
			return nil, err
		}
		organizations = built
	} else {
		imported, err := readExports(opts.input)
		if err != nil {
			return nil, err
		}
		organizations = imported
	}

	if opts.orgID == "" {
		return organizations, nil
	}
	for _, organization := range organizations {
		if organization.ID() == opts.orgID {
			return []*org.Organization{organization}, nil
		}
	}
	return nil, apperror.Newf(apperror.CodeNotFound, "organization %q not found", opts.orgID)
}

func readExports(path string) ([]*org.Organization, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var exports []org.OrganizationExport
	if err := json.Unmarshal(raw, &exports); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	organizations := make([]*org.Organization, 0, len(exports))
	for _, exported := range exports {
		organization, err := org.ImportOrganization(exported)
		if err != nil {
			return nil, fmt.Errorf("import %q: %w", exported.ID, err)
		}
		organizations = append(organizations, organization)
	}
	return organizations, nil
}

func writeExports(w io.Writer, format string, exports []org.OrganizationExport) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(exports)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(exports); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return apperror.Newf(apperror.CodeValidation, "unsupported format %q", format)
	}
}
