package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skillpathlabs/personalization/internal/recommend"
)

var (
	poolPath string
	topCount int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank a candidate pool against the user's profile",
	Long: `Score and rank candidates from a YAML pool file, best match first.

Example:
  personalctl recommend --user u1 --pool catalog.yaml --top 5`,
	RunE: runRecommend,
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Build an ordered learning path from a candidate pool",
	Long: `Rank the pool, take the top candidates, and order them easiest first
with adaptive guidance notes.

Example:
  personalctl path --user u1 --pool catalog.yaml --top 3`,
	RunE: runPath,
}

func init() {
	for _, cmd := range []*cobra.Command{recommendCmd, pathCmd} {
		cmd.Flags().StringVar(&poolPath, "pool", "", "path to candidate pool file (YAML)")
		cmd.Flags().IntVar(&topCount, "top", 5, "number of candidates to return")
	}
}

// filePool loads candidates from a YAML file of the form:
//
//	candidates:
//	  - id: react-dashboard
//	    skills: [react, hooks]
//	    difficulty: medium
//	    estimated_hours: 20
type filePool struct {
	path string
}

func (p filePool) List(context.Context) ([]recommend.CandidateItem, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool file: %w", err)
	}

	var doc struct {
		Candidates []recommend.CandidateItem `yaml:"candidates"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pool file %s: %w", p.path, err)
	}
	return doc.Candidates, nil
}

func requirePool() error {
	if poolPath == "" {
		return fmt.Errorf("--pool is required")
	}
	return nil
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	if err := requirePool(); err != nil {
		return err
	}
	eng, _, cleanup, err := newEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	scored, err := eng.RecommendFromPool(cmd.Context(), userID, filePool{path: poolPath}, topCount)
	if err != nil {
		return err
	}
	return printJSON(scored)
}

func runPath(cmd *cobra.Command, _ []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	if err := requirePool(); err != nil {
		return err
	}
	eng, _, cleanup, err := newEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	path, err := eng.PathFromPool(cmd.Context(), userID, filePool{path: poolPath}, topCount)
	if err != nil {
		return err
	}
	return printJSON(path)
}
