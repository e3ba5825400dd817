// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"hash/fnv"
	"strings"

	"github.com/pdiddy/insight-engine/internal/metrics"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// palette holds the rendering colors categories are hashed onto.
var palette = []string{
	"#2563eb", "#16a34a", "#d97706", "#9333ea", "#dc2626",
	"#0891b2", "#db2777", "#65a30d", "#4f46e5", "#ea580c",
}

// keyInsightsColor is reserved so the pinned category always looks the same.
const keyInsightsColor = "#0f766e"

// ID derives a category id from its display name: lowercase with runs of
// whitespace replaced by underscores.
func ID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// Color returns a stable hex color for a category id.
func Color(id string) string {
	if isKeyInsightsID(id) {
		return keyInsightsColor
	}
	h := fnv.New32a()
	h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}

// NewCategory builds an empty category with derived id, color and default metrics.
func NewCategory(name string) types.Category {
	id := ID(name)
	return types.Category{
		ID:      id,
		Name:    name,
		Content: []types.ContentItem{},
		Metrics: metrics.Default(),
		Color:   Color(id),
	}
}

// IsKeyInsights reports whether c is the category pinned to the front.
func IsKeyInsights(c types.Category) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), types.KeyInsights) || isKeyInsightsID(c.ID)
}

func isKeyInsightsID(id string) bool {
	return strings.Contains(strings.ToLower(id), "key_insight")
}
