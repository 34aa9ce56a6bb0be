package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"itemvault/internal/dashboard"
	"itemvault/internal/services"
)

var statsOutput string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard aggregates",
	Long: `Compute the same aggregates the dashboard endpoint returns: totals, the
last seven days of activity and the item count per category.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "table", "Output format: table or yaml")
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsOutput != "table" && statsOutput != "yaml" {
		return fmt.Errorf("unknown output format %q (use table or yaml)", statsOutput)
	}

	db, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	agg, err := services.NewDashboardService(db).GetOverview()
	if err != nil {
		return err
	}

	if statsOutput == "yaml" {
		return writeStatsYAML(cmd.OutOrStdout(), agg)
	}
	renderStats(cmd.OutOrStdout(), agg)
	return nil
}

type statsDocument struct {
	Totals     dashboard.Totals `yaml:"totals"`
	Activity   map[string]int   `yaml:"activity"`
	Categories map[string]int   `yaml:"categories"`
}

func writeStatsYAML(w io.Writer, agg *dashboard.Aggregates) error {
	doc := statsDocument{
		Totals:     agg.Totals,
		Activity:   make(map[string]int, len(agg.ActivityByDay)),
		Categories: make(map[string]int, len(agg.CategoryDistribution)),
	}
	for _, day := range agg.ActivityByDay {
		doc.Activity[day.Date] = day.Count
	}
	for _, share := range agg.CategoryDistribution {
		doc.Categories[share.Name] = share.Count
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func renderStats(out io.Writer, agg *dashboard.Aggregates) {
	t := agg.Totals
	fmt.Fprintln(out, headerStyle("Totals"))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  items\t%d\n", t.ItemCount)
	fmt.Fprintf(w, "  categories\t%d\n", t.CategoryCount)
	fmt.Fprintf(w, "  fields\t%d\n", t.FieldCount)
	fmt.Fprintf(w, "  added this week\t%d\n", t.AddedThisWeek)
	_ = w.Flush()

	fmt.Fprintln(out, headerStyle("Activity"))
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, day := range agg.ActivityByDay {
		fmt.Fprintf(w, "  %s\t%s\t%d\n", day.Label, mutedStyle(day.Date), day.Count)
	}
	_ = w.Flush()

	fmt.Fprintln(out, headerStyle("Categories"))
	if len(agg.CategoryDistribution) == 0 {
		fmt.Fprintln(out, mutedStyle("  none"))
		return
	}
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, share := range agg.CategoryDistribution {
		fmt.Fprintf(w, "  %s\t%d\n", groupStyle(share.Name), share.Count)
	}
	_ = w.Flush()
}
