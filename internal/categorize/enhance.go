// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import "github.com/pdiddy/insight-engine/pkg/types"

// Enhance gives every category with no content up to limit items from the
// head of items, in order. Each empty category draws from the same head, so
// several may share items. Inputs are not modified and repeated calls
// return equal results. Items with blank content are never used.
func Enhance(categories []types.Category, items []types.ContentItem, limit int) []types.Category {
	if limit <= 0 {
		limit = DefaultEnhanceLimit
	}

	head := make([]types.ContentItem, 0, limit)
	for _, item := range items {
		if len(head) == limit {
			break
		}
		if isValid(item) {
			head = append(head, item)
		}
	}

	out := make([]types.Category, len(categories))
	for i, c := range categories {
		if len(c.Content) == 0 {
			c.Content = append([]types.ContentItem{}, head...)
		}
		out[i] = c
	}
	return out
}
