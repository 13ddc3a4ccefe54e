package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/rsflow"
	"github.com/aretw0/rsflow/internal/cli"
	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/rsf"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the recipe for other tools",
	Long: `Renders the recipe in one of the supported formats:
  sconstruct  Madagascar SConstruct script (default)
  yaml, json  artifact manifest with command strings
  shell       one shell line per artifact, in build order`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, verbose := persistentFlags(cmd)
		format, _ := cmd.Flags().GetString("format")

		recipe, err := cli.LoadRecipe(configPath, cli.CreateLogger(verbose))
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}

		if err := render(os.Stdout, recipe, format); err != nil {
			fmt.Printf("Render failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", "sconstruct", "Output format: sconstruct, yaml, json or shell")
}

// manifestEntry is an artifact with its operation flattened to the wire string.
type manifestEntry struct {
	Name        string   `json:"name" yaml:"name"`
	Sources     []string `json:"sources,omitempty" yaml:"sources,omitempty"`
	Command     string   `json:"command" yaml:"command"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

func manifest(artifacts []domain.Artifact) []manifestEntry {
	out := make([]manifestEntry, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, manifestEntry{
			Name:        a.Name,
			Sources:     a.Sources,
			Command:     rsf.Command(a.Operation),
			Description: a.Description,
		})
	}
	return out
}

func render(w io.Writer, recipe *rsflow.Recipe, format string) error {
	switch format {
	case "sconstruct", "":
		_, err := io.WriteString(w, recipe.SConstruct())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(manifest(recipe.Graph.Artifacts()))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(manifest(recipe.Graph.Artifacts()))
	case "shell":
		opts := recipe.Config.ShellOptions()
		for _, name := range recipe.Graph.TopologicalOrder() {
			a, _ := recipe.Graph.Artifact(name)
			line, err := rsf.Shell(a, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, line)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
