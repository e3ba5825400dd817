// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/insight-engine/internal/classify"
	"github.com/pdiddy/insight-engine/internal/metrics"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// FormatTable writes categories as a human-readable table to w.
func FormatTable(res Result, w io.Writer) {
	if len(res.Categories) == 0 {
		fmt.Fprintln(w, "No categories.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-28s  %-5s  %-4s  %-4s  %-4s  %-4s  %s\n",
		"Rank", "Category", "Items", "Rel", "Acc", "Cred", "All", "Top item")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, c := range res.Categories {
		d := metrics.ToDisplayPercent(c.Metrics)
		fmt.Fprintf(w, "%-4d  %-28s  %-5d  %-4d  %-4d  %-4d  %-4d  %s\n",
			i+1, truncateText(c.Name, 28), len(c.Content),
			d.Relevance, d.Accuracy, d.Credibility, d.Overall, topItem(c))
	}

	fmt.Fprintf(w, "\n%d categories, %d items, %d sources, overall %d%%\n",
		res.Summary.Categories, res.Summary.Items, res.Summary.Sources, res.Summary.Display.Overall)
	if res.Cached {
		fmt.Fprintf(w, "cached from run %s\n", res.RunID)
	}
}

// FormatJSON writes the result as indented JSON to w.
func FormatJSON(res Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// FormatYAML writes the result as YAML to w.
func FormatYAML(res Result, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(res)
}

func topItem(c types.Category) string {
	if len(c.Content) == 0 {
		return ""
	}
	item := c.Content[0]
	text := item.Title
	if text == "" {
		text = strings.Join(strings.Fields(classify.PlainText(item.Content)), " ")
	}
	return truncateText(text, 40)
}

// truncateText shortens s to max runes, ending in "...".
func truncateText(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
