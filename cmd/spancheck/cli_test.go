package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/spancheck/cmd/spancheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"annotations", "pages", "catalog", "runs", "defects"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesDatasetFlags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"annotations", dir, "-C", "City", "-C", "Airport", "-c", "4", "-y", "-o", "out"})

	require.NoError(t, err)
	assert.Equal(t, dir, cli.Annotations.Dataset.DatasetDir)
	assert.Equal(t, []string{"City", "Airport"}, cli.Annotations.Dataset.Category)
	assert.Equal(t, 4, cli.Annotations.Dataset.Concurrency)
	assert.True(t, cli.Annotations.Dataset.Yes)
	assert.Equal(t, "out", cli.Annotations.OutputDir)
}

func TestCLI_DefaultsReportDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"pages", dir})

	require.NoError(t, err)
	assert.Equal(t, "page_inspection", cli.Pages.OutputDir)
	assert.Equal(t, 10, cli.Pages.Dataset.Concurrency)
	assert.False(t, cli.Pages.Dataset.Yes)
}
