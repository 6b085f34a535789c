package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpathlabs/personalization/internal/recommend"
)

func TestFilePool_List(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
candidates:
  - id: react-dashboard
    skills: [react, hooks]
    technologies: [react]
    difficulty: medium
    estimated_hours: 20
    learning_outcomes: [build interactive dashboards]
  - id: intro-html
    skills: [html, css]
    difficulty: easy
    estimated_hours: 8
`), 0o600))

	candidates, err := filePool{path: path}.List(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "react-dashboard", candidates[0].ID)
	assert.Equal(t, []string{"react", "hooks"}, candidates[0].Skills)
	assert.Equal(t, recommend.DifficultyMedium, candidates[0].Difficulty)
	assert.InDelta(t, 20, candidates[0].EstimatedHours, 1e-9)
	assert.Equal(t, recommend.DifficultyEasy, candidates[1].Difficulty)
}

func TestFilePool_Errors(t *testing.T) {
	_, err := filePool{path: filepath.Join(t.TempDir(), "missing.yaml")}.List(context.Background())
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("candidates: {not: [a, list"), 0o600))
	_, err = filePool{path: bad}.List(context.Background())
	require.Error(t, err)
}
