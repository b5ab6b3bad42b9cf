// pkg/render/terminal.go
package render

import (
	"fmt"
	"io"
	"strconv"

	"bluepriori-dashboard/pkg/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			// les en-têtes sont affichés tels quels, flèche de tri comprise
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNormal},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
	)
}

// FormatScore renders a priority score with two decimals
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

// Headers returns the assets table headers with the sort arrow on the active column
func Headers(sort models.SortState) []string {
	headers := make([]string, 0, len(models.SortKeys))
	for _, key := range models.SortKeys {
		title := key.Title()
		if arrow := sort.Indicator(key); arrow != "" {
			title += " " + arrow
		}
		headers = append(headers, title)
	}
	return headers
}

// View writes the assets table followed by both aggregates
func View(w io.Writer, view models.ViewModel) error {
	if view.Error != "" && !view.Loaded {
		fmt.Fprintln(w, color.RedString("%s", view.Error))
		return nil
	}
	if view.Error != "" {
		fmt.Fprintln(w, color.YellowString("%s, showing last loaded page", view.Error))
	}

	p := view.Pagination
	fmt.Fprintf(w, "\nAssets List (page %d/%d, %d assets)\n", p.Page, p.Pages, p.Total)

	table := newTable(w)
	table.Header(Headers(view.Sort))
	for _, asset := range view.Rows {
		if err := table.Append([]string{
			asset.Name,
			asset.Version,
			asset.Product,
			FormatScore(asset.PriorityScore),
			strconv.Itoa(asset.VulnerabilitiesCount),
		}); err != nil {
			return fmt.Errorf("failed to append asset row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render assets table: %w", err)
	}

	fmt.Fprintln(w, "\nPriority Score by Asset Type")
	chart := newTable(w)
	chart.Header([]string{"Product", "Average Priority"})
	for _, avg := range view.ChartData {
		if err := chart.Append([]string{avg.Product, FormatScore(avg.AveragePriority)}); err != nil {
			return fmt.Errorf("failed to append chart row: %w", err)
		}
	}
	if err := chart.Render(); err != nil {
		return fmt.Errorf("failed to render chart table: %w", err)
	}

	s := view.SeverityData
	fmt.Fprintf(w, "\nSeverity: %s  %s  %s\n",
		color.RedString("High %d", s.High),
		color.YellowString("Medium %d", s.Medium),
		color.GreenString("Low %d", s.Low),
	)

	var nav []string
	if p.HasPrev {
		nav = append(nav, fmt.Sprintf("--page %d for previous", p.Page-1))
	}
	if p.HasNext {
		nav = append(nav, fmt.Sprintf("--page %d for next", p.Page+1))
	}
	for _, hint := range nav {
		fmt.Fprintln(w, color.HiBlackString(hint))
	}
	return nil
}

func severityColor(s models.Severity) func(format string, a ...interface{}) string {
	switch s {
	case models.SeverityCritical:
		return color.HiRedString
	case models.SeverityHigh:
		return color.RedString
	case models.SeverityMedium:
		return color.YellowString
	case models.SeverityLow:
		return color.GreenString
	default:
		return fmt.Sprintf
	}
}

// Detail writes the vulnerabilities of the selected asset
func Detail(w io.Writer, detail models.DetailState) error {
	switch detail.Status {
	case models.DetailClosed:
		return nil
	case models.DetailLoading:
		fmt.Fprintln(w, "Loading...")
		return nil
	case models.DetailFailed:
		fmt.Fprintln(w, color.RedString("Failed to load vulnerabilities for asset %d", detail.AssetID))
		return nil
	}

	fmt.Fprintf(w, "\nVulnerabilities of asset %d\n", detail.AssetID)
	if len(detail.Vulnerabilities) == 0 {
		fmt.Fprintln(w, color.GreenString("No vulnerabilities"))
		return nil
	}

	table := newTable(w)
	table.Header([]string{"ID", "Severity", "CVSS v3", "Title"})
	for _, v := range detail.Vulnerabilities {
		score := "-"
		if v.CVSSv3Score != nil {
			score = strconv.FormatFloat(*v.CVSSv3Score, 'f', 1, 64)
		}
		if err := table.Append([]string{
			string(v.ID),
			severityColor(v.Severity)("%s", v.Severity.Label()),
			score,
			v.Title,
		}); err != nil {
			return fmt.Errorf("failed to append vulnerability row: %w", err)
		}
	}
	return table.Render()
}
