package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/frameshow"
)

// testEnv writes a config pointing at a fresh store and a sample document.
func testEnv(t *testing.T, driver string) (cfgPath, docPath string) {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "store")
	if driver == "sqlite" {
		storePath = filepath.Join(dir, "pages.db")
	}
	cfgPath = filepath.Join(dir, "frameshow.json")
	cfg := `{"logLevel": "warn", "store": {"driver": "` + driver + `", "path": "` + filepath.ToSlash(storePath) + `"}}`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	scene := frameshow.NewScene(frameshow.DefaultSceneConfig())
	scene.AppendFrame()
	scene.Add(frameshow.NewShape(frameshow.ColorBlack, []frameshow.Vec2{{X: 0, Y: 0}, {X: 10, Y: 10}}))
	scene.Add(frameshow.NewCircle(frameshow.ColorBlack, frameshow.Vec2{X: 50, Y: 50}))
	scene.Add(frameshow.NewText("hello", frameshow.Vec2{X: 5, Y: 5}))
	data, err := scene.MarshalJSON()
	require.NoError(t, err)
	docPath = filepath.Join(dir, "deck.json")
	require.NoError(t, os.WriteFile(docPath, data, 0o644))
	return cfgPath, docPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInfoFromFile(t *testing.T) {
	cfg, doc := testEnv(t, "badger")
	out, err := run(t, "-c", cfg, "info", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "frames:    2 (current 1)")
	assert.Contains(t, out, "objects:   3")
	assert.Contains(t, out, "Circle   1")
	assert.Contains(t, out, "style 3d")
}

func TestPagesRoundTrip(t *testing.T) {
	for _, driver := range []string{"badger", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			cfg, doc := testEnv(t, driver)

			_, err := run(t, "-c", cfg, "pages", "import", "deck", doc)
			require.NoError(t, err)

			out, err := run(t, "-c", cfg, "pages", "list")
			require.NoError(t, err)
			assert.Equal(t, []string{"deck"}, strings.Fields(out))

			out, err = run(t, "-c", cfg, "info", "-p", "deck")
			require.NoError(t, err)
			assert.Contains(t, out, "objects:   3")

			exported, err := run(t, "-c", cfg, "pages", "export", "deck")
			require.NoError(t, err)
			original, err := os.ReadFile(doc)
			require.NoError(t, err)
			assert.JSONEq(t, string(original), exported)

			_, err = run(t, "-c", cfg, "pages", "delete", "deck")
			require.NoError(t, err)
			_, err = run(t, "-c", cfg, "pages", "delete", "deck")
			assert.Error(t, err)
		})
	}
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	cfg, _ := testEnv(t, "badger")
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"num_frames": 1, "objs": [{"type": "Hexagon", "properties": {"1": {}}}]}`), 0o644))

	_, err := run(t, "-c", cfg, "pages", "import", "bad", bad)
	require.Error(t, err)
	var serr *frameshow.SerializationError
	assert.ErrorAs(t, err, &serr)

	out, err := run(t, "-c", cfg, "pages", "list")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestInfoMissingAutosave(t *testing.T) {
	cfg, _ := testEnv(t, "badger")
	_, err := run(t, "-c", cfg, "info")
	assert.Error(t, err)
}

func TestLogLevelOverride(t *testing.T) {
	cfg, doc := testEnv(t, "badger")
	_, err := run(t, "-c", cfg, "--log-level", "shout", "info", doc)
	assert.Error(t, err)
}
