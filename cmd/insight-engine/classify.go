// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/insight-engine/internal/categorize"
	"github.com/pdiddy/insight-engine/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Print the category a piece of text falls into",
	Long: `Classify labels one content item with the keyword classifier and prints
the category name. Text is taken from the arguments, or from stdin when none
are given. Use --scores to see how many triggers each category matched.`,
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := categorize.New(cfg.Categorize, logger)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	title, _ := cmd.Flags().GetString("title")
	item := types.ContentItem{Content: text, Title: title}

	c := p.Classifier()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, c.Classify(item))

	if showScores, _ := cmd.Flags().GetBool("scores"); showScores {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-28s  %-7s  %s\n", "Category", "Matches", "Triggers")
		fmt.Fprintln(out, strings.Repeat("-", 70))
		for _, s := range c.Scores(item) {
			fmt.Fprintf(out, "%-28s  %-7d  %s\n", s.Category, len(s.Matches), strings.Join(s.Matches, ", "))
		}
	}
	return nil
}

func init() {
	classifyCmd.Flags().String("title", "", "item title, matched along with the text")
	classifyCmd.Flags().Bool("scores", false, "print per-category match counts")

	rootCmd.AddCommand(classifyCmd)
}
