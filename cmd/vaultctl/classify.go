package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"itemvault/internal/fieldtype"
	"itemvault/internal/services"
)

var (
	formatReveal bool

	secretStyle = color.New(color.FgRed, color.Bold).SprintFunc()
	groupStyle  = color.New(color.FgCyan).SprintFunc()
	headerStyle = color.New(color.Bold).SprintFunc()
	mutedStyle  = color.New(color.Faint).SprintFunc()
)

// classifyCmd prints the classification of one or more field names
var classifyCmd = &cobra.Command{
	Use:   "classify <name>...",
	Short: "Show how field names are classified",
	Long: `Classify each field name and print its type, group, whether it is a
secret, the type used when displaying a stored value and the input widget
picked for it.

Example:
  vaultctl classify "API Key" Website "SSH Command" 8080`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

// formatCmd formats a single value
var formatCmd = &cobra.Command{
	Use:   "format <name> <value>",
	Short: "Format a value the way an item view shows it",
	Long: `Classify the field name for display and format the raw value. Secret
values are masked unless --reveal is given.

Example:
  vaultctl format Phone "(555) 123-4567"
  vaultctl format Password hunter2 --reveal`,
	Args: cobra.ExactArgs(2),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().BoolVar(&formatReveal, "reveal", false, "Show secret values unmasked")
}

func runClassify(cmd *cobra.Command, args []string) error {
	writeClassification(cmd.OutOrStdout(), args)
	return nil
}

func writeClassification(out io.Writer, names []string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle("NAME\tTYPE\tGROUP\tSECRET\tDISPLAY\tINPUT"))
	for _, name := range names {
		cf := fieldtype.Classify(name)
		display := fieldtype.ClassifyForDisplay(name)
		config := fieldtype.TypeConfigFor(name)

		secret := mutedStyle("no")
		if cf.IsSecret {
			secret = secretStyle("yes")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			quoteBlank(name), cf.Value, groupStyle(cf.Group), secret, display.Value, config.Value)
	}
	_ = w.Flush()
}

func runFormat(cmd *cobra.Command, args []string) error {
	view := services.BuildFieldView(args[0], args[1], formatReveal)
	out := cmd.OutOrStdout()

	display := view.Display
	if view.Masked {
		display = secretStyle(display)
	}
	fmt.Fprintln(out, display)
	fmt.Fprintf(out, "%s %s (%s)\n", mutedStyle("type:"), view.Label, groupStyle(view.Group))
	return nil
}

func quoteBlank(name string) string {
	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("%q", name)
	}
	return name
}
