// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry provides the read-only lookup table of known VC firms,
// companies and verified data sources. It is used to fill in provenance
// types on search results and plays no part in classification.
package registry

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// EntryKind classifies a registry entry.
type EntryKind string

const (
	KindVCFirm         EntryKind = "vc_firm"
	KindCompany        EntryKind = "company"
	KindVerifiedSource EntryKind = "verified_source"
)

var validKinds = map[EntryKind]bool{
	KindVCFirm:         true,
	KindCompany:        true,
	KindVerifiedSource: true,
}

// Entry is one record of the registry file.
type Entry struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Kind    EntryKind `json:"kind" yaml:"kind"`
	URL     string    `json:"url,omitempty" yaml:"url,omitempty"`
	Domains []string  `json:"domains,omitempty" yaml:"domains,omitempty"`
}

// File is the on-disk layout of the registry.
type File struct {
	Entries []Entry `yaml:"entries"`
}

// Registry indexes entries by id, name and domain. It is not modified after
// construction and is safe for concurrent use.
type Registry struct {
	entries []Entry
	byID    map[string]int
	byName  map[string]int
	byHost  map[string]int
}

// New validates entries and builds the indexes.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		byID:   make(map[string]int),
		byName: make(map[string]int),
		byHost: make(map[string]int),
	}
	for i, e := range entries {
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			return nil, fmt.Errorf("registry entry %d has no id", i)
		}
		if !validKinds[e.Kind] {
			return nil, fmt.Errorf("registry entry %s has invalid kind %q", e.ID, e.Kind)
		}
		if _, dup := r.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate registry id %s", e.ID)
		}

		idx := len(r.entries)
		r.entries = append(r.entries, e)
		r.byID[e.ID] = idx
		if name := normalizeName(e.Name); name != "" {
			if _, taken := r.byName[name]; !taken {
				r.byName[name] = idx
			}
		}
		hosts := append([]string{}, e.Domains...)
		if e.URL != "" {
			hosts = append(hosts, e.URL)
		}
		for _, h := range hosts {
			if host := hostOf(h); host != "" {
				if _, taken := r.byHost[host]; !taken {
					r.byHost[host] = idx
				}
			}
		}
	}
	return r, nil
}

// Load reads a registry YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing registry file %s: %w", path, err)
	}
	r, err := New(f.Entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Lookup returns the entry with the given id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	idx, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// Match finds the entry a source refers to: by URL host first (including
// parent domains), then by id, then by case-insensitive name.
func (r *Registry) Match(src types.Source) (Entry, bool) {
	if host := hostOf(src.URL); host != "" {
		for h := host; h != ""; h = parentDomain(h) {
			if idx, ok := r.byHost[h]; ok {
				return r.entries[idx], true
			}
		}
	}
	if e, ok := r.Lookup(src.Name); ok {
		return e, true
	}
	if idx, ok := r.byName[normalizeName(src.Name)]; ok {
		return r.entries[idx], true
	}
	return Entry{}, false
}

// EnrichSources returns copies of items in which every source without a
// type takes the kind of its matching entry. Inputs are not modified.
func (r *Registry) EnrichSources(items []types.ContentItem) []types.ContentItem {
	out := make([]types.ContentItem, len(items))
	for i, item := range items {
		if len(item.Sources) > 0 {
			sources := make([]types.Source, len(item.Sources))
			for j, src := range item.Sources {
				if strings.TrimSpace(src.Type) == "" {
					if e, ok := r.Match(src); ok {
						src.Type = string(e.Kind)
					}
				}
				sources[j] = src
			}
			item.Sources = sources
		}
		out[i] = item
	}
	return out
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// hostOf accepts a URL or bare domain and returns the lowercase host
// without a leading "www.".
func hostOf(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// parentDomain drops the leftmost label, stopping before a bare TLD.
func parentDomain(host string) string {
	i := strings.IndexByte(host, '.')
	if i < 0 {
		return ""
	}
	parent := host[i+1:]
	if !strings.Contains(parent, ".") {
		return ""
	}
	return parent
}
