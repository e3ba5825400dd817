// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/insight-engine/internal/registry"
	"github.com/pdiddy/insight-engine/pkg/types"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Query the source registry of VC firms, companies and verified sources",
}

var registryLookupCmd = &cobra.Command{
	Use:   "lookup <id|name|url>",
	Short: "Find the registry entry for an id, name or URL",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRegistryLookup,
}

func runRegistryLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Registry.Path
	if cmd.Flags().Changed("registry") {
		path, _ = cmd.Flags().GetString("registry")
	}
	if path == "" {
		return fmt.Errorf("no registry file: set --registry or registry.path")
	}

	reg, err := registry.Load(path)
	if err != nil {
		return err
	}

	key := strings.Join(args, " ")
	e, ok := reg.Lookup(key)
	if !ok {
		e, ok = reg.Match(types.Source{Name: key, URL: key})
	}
	if !ok {
		return fmt.Errorf("no registry entry matches %q", key)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:      %s\n", e.ID)
	fmt.Fprintf(out, "Name:    %s\n", e.Name)
	fmt.Fprintf(out, "Kind:    %s\n", e.Kind)
	if e.URL != "" {
		fmt.Fprintf(out, "URL:     %s\n", e.URL)
	}
	if len(e.Domains) > 0 {
		fmt.Fprintf(out, "Domains: %s\n", strings.Join(e.Domains, ", "))
	}
	return nil
}

func init() {
	registryCmd.PersistentFlags().String("registry", "", "source registry YAML file")

	registryCmd.AddCommand(registryLookupCmd)
	rootCmd.AddCommand(registryCmd)
}
