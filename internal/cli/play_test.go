package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickery-game/trickery/internal/factory"
)

const sessionSeedCSV = `Alice Baker,I once met a llama,TRUE
Bob Cole,I have never eaten pizza,FALSE
Carol Diaz,I can juggle five balls,TRUE
`

func newSessionApp(t *testing.T) *factory.TestApp {
	t.Helper()
	app := factory.NewTestApp()
	_, err := app.SeedingService.SeedFromReader(context.Background(), strings.NewReader(sessionSeedCSV))
	require.NoError(t, err)
	return app
}

func TestSessionFullGame(t *testing.T) {
	app := newSessionApp(t)

	input := strings.Join([]string{
		"1", // statuses
		"2", // record guesses
		"Alice Baker",
		"abc", // malformed, re-prompted
		"101",
		"3", // bonus
		"Bob Cole",
		"4",
		"4", // recompute
		"5", // summary
		"q",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := runSession(context.Background(), app.App, t.TempDir(), strings.NewReader(input), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Alice Baker: NONE")
	assert.Contains(t, text, "Error:")
	assert.Contains(t, text, "Recorded 3 guesses for Alice Baker")
	assert.Contains(t, text, "Set bonus points for Bob Cole to 4")
	assert.Contains(t, text, "Scores recomputed")
	assert.Contains(t, text, "TOP SCORERS:")
}

func TestSessionWriteReports(t *testing.T) {
	app := newSessionApp(t)
	dir := t.TempDir()

	var out bytes.Buffer
	err := runSession(context.Background(), app.App, dir, strings.NewReader("6\nq\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Reports written to "+dir)
}

func TestSessionEndsAtEOF(t *testing.T) {
	app := newSessionApp(t)

	var out bytes.Buffer
	err := runSession(context.Background(), app.App, t.TempDir(), strings.NewReader("1\n"), &out)
	require.NoError(t, err)
}

func TestSessionUnknownPlayerReturnsToMenu(t *testing.T) {
	app := newSessionApp(t)

	input := "2\nNobody Here\n1\nq\n"
	var out bytes.Buffer
	err := runSession(context.Background(), app.App, t.TempDir(), strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Error:")
}
