package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	apperrors "itemvault/internal/errors"
	"itemvault/internal/fieldtype"
	"itemvault/internal/models"
	"itemvault/internal/services"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <categories.yaml>",
	Short: "Create categories from a YAML template file",
	Long: `Read category templates from a YAML file and create each one. Categories
whose name is already taken are reported and skipped.

File format:
  categories:
    - name: Servers
      description: SSH hosts
      fields:
        - {name: Hostname, type: url, required: true}
        - {name: Password, type: password}`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate the file without writing to the database")
}

// templateFile is the YAML layout read by import.
type templateFile struct {
	Categories []categoryTemplate `yaml:"categories"`
}

type categoryTemplate struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Fields      []fieldTemplate `yaml:"fields"`
}

type fieldTemplate struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	templates, err := parseTemplates(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if importDryRun {
		for _, tmpl := range templates {
			fmt.Fprintf(out, "%s %s (%d fields)\n", mutedStyle("valid"), tmpl.Name, len(tmpl.Fields))
		}
		return nil
	}

	db, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	return importCategories(services.NewCategoryService(db), templates, out)
}

// parseTemplates decodes a template file and checks every field type against
// the registry.
func parseTemplates(r io.Reader) ([]categoryTemplate, error) {
	var file templateFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no categories found")
		}
		return nil, fmt.Errorf("invalid template file: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, errors.New("no categories found")
	}

	for i, c := range file.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("category %d: name is required", i+1)
		}
		for _, field := range c.Fields {
			if strings.TrimSpace(field.Name) == "" {
				return nil, fmt.Errorf("category %q: field name is required", c.Name)
			}
			if !fieldtype.IsKnown(field.Type) {
				return nil, fmt.Errorf("category %q: field %q has unknown type %q", c.Name, field.Name, field.Type)
			}
		}
	}
	return file.Categories, nil
}

// importCategories creates each template in order. Duplicates are skipped;
// any other error stops the import.
func importCategories(svc services.CategoryServicer, templates []categoryTemplate, out io.Writer) error {
	created, skipped := 0, 0
	for _, tmpl := range templates {
		fields := make([]models.CategoryField, 0, len(tmpl.Fields))
		for _, f := range tmpl.Fields {
			fields = append(fields, models.CategoryField{Name: f.Name, Type: f.Type, Required: f.Required})
		}

		category, err := svc.CreateCategory(tmpl.Name, tmpl.Description, fields)
		if isDuplicate(err) {
			fmt.Fprintf(out, "%s %s\n", mutedStyle("exists"), tmpl.Name)
			skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("create %q: %w", tmpl.Name, err)
		}
		fmt.Fprintf(out, "%s %s %s\n", groupStyle("created"), category.Name, mutedStyle(category.ID))
		created++
	}

	fmt.Fprintf(out, "%d created, %d skipped\n", created, skipped)
	return nil
}

func isDuplicate(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == apperrors.ErrDuplicateCategory.Code
}
