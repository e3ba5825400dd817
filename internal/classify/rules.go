// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "github.com/pdiddy/insight-engine/pkg/types"

// DefaultRules returns the built-in keyword table. Order is the tie-break
// priority: when two categories score the same, the earlier one wins.
func DefaultRules() []types.CategoryRule {
	return []types.CategoryRule{
		{
			Name: "Business",
			Keywords: []string{
				"revenue", "enterprise", "business", "customer", "customers",
				"sales", "partnership", "partnerships", "b2b", "saas",
				"business model", "go-to-market", "product launch", "operations",
			},
		},
		{
			Name: "Market Analysis",
			Keywords: []string{
				"market", "markets", "market share", "competitor", "competitors",
				"competition", "industry", "trend", "trends", "demand",
				"segment", "landscape", "tam", "forecast",
			},
		},
		{
			Name: "Financial Performance",
			Keywords: []string{
				"profit", "profits", "earnings", "ebitda", "margin", "margins",
				"cash flow", "quarterly", "fiscal", "eps", "net income",
				"balance sheet", "guidance", "losses",
			},
		},
		{
			Name: "Funding and Investment",
			Keywords: []string{
				"funding", "investment", "investor", "investors", "venture capital",
				"vc", "seed", "series a", "series b", "series c", "raised",
				"valuation", "ipo", "acquisition", "acquired", "backed",
			},
		},
		{
			Name: "Technology",
			Keywords: []string{
				"technology", "ai", "artificial intelligence", "machine learning",
				"software", "platform", "api", "cloud", "infrastructure",
				"algorithm", "open source", "llm", "chip", "semiconductor",
			},
		},
		{
			Name: "Leadership and People",
			Keywords: []string{
				"ceo", "cto", "cfo", "founder", "founders", "co-founder",
				"executive", "executives", "leadership", "hired", "hiring",
				"employees", "board", "appointed",
			},
		},
		{
			Name: "Risks and Challenges",
			Keywords: []string{
				"risk", "risks", "challenge", "challenges", "lawsuit", "decline",
				"layoffs", "threat", "uncertainty", "concern", "concerns",
				"volatility", "breach", "downturn",
			},
		},
		{
			Name: "Regulation and Policy",
			Keywords: []string{
				"regulation", "regulations", "regulatory", "compliance", "policy",
				"sec", "antitrust", "legislation", "government", "ftc", "gdpr",
				"lawmakers",
			},
		},
		{
			Name: "Social Sentiment",
			Keywords: []string{
				"twitter", "reddit", "linkedin", "sentiment", "viral", "followers",
				"community", "opinion", "backlash", "trending", "tweet", "tweets",
				"hashtag",
			},
		},
	}
}
