// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a content item to the best-fit category label by
// counting keyword triggers. Classification is a pure function of the item
// and the rule table; a Classifier is safe for concurrent use.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// Fallback is the label returned when no rule matches.
const Fallback = types.KeyInsights

type trigger struct {
	keyword string
	re      *regexp.Regexp
}

type rule struct {
	name     string
	triggers []trigger
}

// Classifier scores items against an ordered rule table.
type Classifier struct {
	rules []rule
}

// Score is the outcome of matching one rule against an item.
type Score struct {
	Category string   `json:"category" yaml:"category"`
	Matches  []string `json:"matches" yaml:"matches"`
}

// nonWord matches one character outside a Unicode word. RE2's \b only
// knows ASCII word characters.
const nonWord = `[^\p{L}\p{M}\p{N}_]`

// New compiles rules into a Classifier. Rule order is the tie-break
// priority. Keywords are matched case-insensitively on word boundaries.
func New(rules []types.CategoryRule) (*Classifier, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no classification rules provided")
	}

	c := &Classifier{}
	seen := make(map[string]bool)
	for _, r := range rules {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("classification rule has no name")
		}
		if seen[strings.ToLower(name)] {
			return nil, fmt.Errorf("duplicate classification rule %q", name)
		}
		seen[strings.ToLower(name)] = true

		compiled := rule{name: name}
		for _, kw := range r.Keywords {
			kw = strings.Join(strings.Fields(strings.ToLower(kw)), " ")
			if kw == "" {
				continue
			}
			re, err := regexp.Compile(`(?i)(?:^|` + nonWord + `)` + regexp.QuoteMeta(kw) + `(?:$|` + nonWord + `)`)
			if err != nil {
				return nil, fmt.Errorf("compiling keyword %q for %s: %w", kw, name, err)
			}
			compiled.triggers = append(compiled.triggers, trigger{keyword: kw, re: re})
		}
		if len(compiled.triggers) == 0 {
			return nil, fmt.Errorf("classification rule %q has no keywords", name)
		}
		c.rules = append(c.rules, compiled)
	}
	return c, nil
}

// Default returns a Classifier over DefaultRules.
func Default() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("classify: invalid default rules: %v", err))
	}
	return c
}

// Categories lists rule names in priority order.
func (c *Classifier) Categories() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.name
	}
	return names
}

// Classify returns the category whose rule matches the most distinct
// triggers in the item's content and title. Ties go to the earlier rule.
// Empty content or no matches yield Fallback.
func (c *Classifier) Classify(item types.ContentItem) string {
	best, bestScore := Fallback, 0
	for _, s := range c.Scores(item) {
		if len(s.Matches) > bestScore {
			best, bestScore = s.Category, len(s.Matches)
		}
	}
	return best
}

// Label honors a pre-assigned category and classifies otherwise.
func (c *Classifier) Label(item types.ContentItem) string {
	if pre := strings.TrimSpace(item.Category); pre != "" {
		return pre
	}
	return c.Classify(item)
}

// Scores reports the matched triggers of every rule, in priority order.
// Items with blank content score nothing.
func (c *Classifier) Scores(item types.ContentItem) []Score {
	if strings.TrimSpace(item.Content) == "" {
		return nil
	}
	text := matchText(item)

	scores := make([]Score, 0, len(c.rules))
	for _, r := range c.rules {
		s := Score{Category: r.name}
		for _, t := range r.triggers {
			if t.re.MatchString(text) {
				s.Matches = append(s.Matches, t.keyword)
			}
		}
		scores = append(scores, s)
	}
	return scores
}

// matchText joins content and title as plain text with whitespace collapsed
// so multi-word keywords match across line breaks.
func matchText(item types.ContentItem) string {
	text := PlainText(item.Content)
	if item.Title != "" {
		text += " " + PlainText(item.Title)
	}
	return strings.Join(strings.Fields(text), " ")
}

// PlainText strips HTML markup, dropping script and style bodies. Text
// without markup is returned unchanged.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	// Space before every tag keeps adjacent block texts from fusing.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(s, "<", " <")))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}
