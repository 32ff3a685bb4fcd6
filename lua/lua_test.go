package lua

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/boxes/scripts"
	"github.com/drake/boxes/text"
)

// testCase represents a single test case from JSON
type testCase struct {
	Name   string `json:"name"`
	Script string `json:"script"`
	Want   string `json:"want,omitempty"`
	Error  string `json:"error,omitempty"`
}

type testDataFile struct {
	Tests []testCase `json:"tests"`
}

// setupTest creates an initialized engine that is closed with the test.
func setupTest(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine(nil, 8)
	require.NoError(t, err)
	require.NoError(t, engine.Init())
	t.Cleanup(engine.Close)

	return engine
}

func loadTestData(t *testing.T, filename string) testDataFile {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	require.NoError(t, err)

	var testData testDataFile
	require.NoError(t, json.Unmarshal(data, &testData))
	return testData
}

// TestFeatures runs all feature tests from JSON files
func TestFeatures(t *testing.T) {
	files, err := os.ReadDir("testdata")
	require.NoError(t, err)

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), "_tests.json") {
			continue
		}
		feature := strings.TrimSuffix(file.Name(), "_tests.json")
		t.Run(feature, func(t *testing.T) {
			for _, tt := range loadTestData(t, file.Name()).Tests {
				t.Run(tt.Name, func(t *testing.T) {
					engine := setupTest(t)
					doc, err := engine.DoString(tt.Name, tt.Script)
					if tt.Error != "" {
						require.Error(t, err)
						assert.Contains(t, err.Error(), tt.Error)
						return
					}
					require.NoError(t, err)
					assert.Equal(t, tt.Want, doc.String())
				})
			}
		})
	}
}

func TestEmbeddedDemo(t *testing.T) {
	engine := setupTest(t)
	src, err := scripts.Read("demo")
	require.NoError(t, err)

	doc, err := engine.DoString("demo.lua", src)
	require.NoError(t, err)
	require.Len(t, doc, 1)

	border := "+" + strings.Repeat("-", 29) + "+"
	want := border + "\n" +
		"|" + text.Bold + "Hello world!" + text.Reset + strings.Repeat(" ", 17) + "|\n" +
		"|This is a long string of text|\n" +
		border + "\n"
	assert.Equal(t, want, doc.String())
}

func TestEmbeddedNested(t *testing.T) {
	engine := setupTest(t)
	src, err := scripts.Read("nested")
	require.NoError(t, err)

	doc, err := engine.DoString("nested.lua", src)
	require.NoError(t, err)
	require.Len(t, doc, 2)

	want := text.Bold + "Inventory" + text.Reset + "\n" +
		"+---------+\n" +
		"|" + text.Bold + "Items" + text.Reset + "    |\n" +
		"|+-----+\n|alpha|\n|beta |\n|gamma|\n+-----+  |\n" +
		"|3 entries|\n" +
		"+---------+\n"
	assert.Equal(t, want, doc.String())
}

func TestDoFileCachesCompiledChunks(t *testing.T) {
	engine := setupTest(t)
	path := filepath.Join(t.TempDir(), "doc.lua")
	require.NoError(t, os.WriteFile(path, []byte("return boxes.text('v1')"), 0o644))

	for i := 0; i < 2; i++ {
		doc, err := engine.DoFile(path)
		require.NoError(t, err)
		assert.Equal(t, "v1\n", doc.String())
	}
	assert.Equal(t, 1, engine.protos.Len())

	require.NoError(t, os.WriteFile(path, []byte("return boxes.text('version 2')"), 0o644))
	doc, err := engine.DoFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version 2\n", doc.String())
	assert.Equal(t, 2, engine.protos.Len())
}

func TestCacheSurvivesInit(t *testing.T) {
	engine := setupTest(t)
	path := filepath.Join(t.TempDir(), "doc.lua")
	require.NoError(t, os.WriteFile(path, []byte("return boxes.text('x')"), 0o644))

	_, err := engine.DoFile(path)
	require.NoError(t, err)
	require.NoError(t, engine.Init())

	doc, err := engine.DoFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", doc.String())
	assert.Equal(t, 1, engine.protos.Len())
}

func TestDoFileRequiresSiblings(t *testing.T) {
	engine := setupTest(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.lua"), []byte(`
return { greet = function(name) return boxes.heading("hi " .. name) end }
`), 0o644))
	main := filepath.Join(dir, "main.lua")
	require.NoError(t, os.WriteFile(main, []byte(`
local helper = require("helper")
return helper.greet("there")
`), 0o644))

	pkg := engine.L.GetGlobal("package")
	before := engine.L.GetField(pkg, "path").String()

	doc, err := engine.DoFile(main)
	require.NoError(t, err)
	assert.Equal(t, text.Bold+"hi there"+text.Reset+"\n", doc.String())
	assert.Equal(t, before, engine.L.GetField(pkg, "path").String())
}

func TestDoFileMissing(t *testing.T) {
	engine := setupTest(t)
	_, err := engine.DoFile(filepath.Join(t.TempDir(), "missing.lua"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInitResetsGlobals(t *testing.T) {
	engine := setupTest(t)
	_, err := engine.DoString("set", "counter = 1")
	require.NoError(t, err)

	doc, err := engine.DoString("get", "return boxes.text(tostring(counter))")
	require.NoError(t, err)
	assert.Equal(t, "1\n", doc.String())

	require.NoError(t, engine.Init())
	doc, err = engine.DoString("get", "return boxes.text(tostring(counter))")
	require.NoError(t, err)
	assert.Equal(t, "nil\n", doc.String())
}

func TestShownElementsDoNotLeakBetweenRuns(t *testing.T) {
	engine := setupTest(t)
	_, err := engine.DoString("first", "boxes.show(boxes.text('a')) error('stop')")
	require.Error(t, err)

	doc, err := engine.DoString("second", "return boxes.text('b')")
	require.NoError(t, err)
	assert.Equal(t, "b\n", doc.String())
}

func TestUninitializedEngine(t *testing.T) {
	engine, err := NewEngine(nil, 1)
	require.NoError(t, err)

	_, err = engine.DoString("x", "return nil")
	assert.ErrorIs(t, err, errNotInitialized)
	_, err = engine.DoFile("x.lua")
	assert.ErrorIs(t, err, errNotInitialized)
}

func TestNewEngineRejectsBadCacheSize(t *testing.T) {
	_, err := NewEngine(nil, 0)
	assert.Error(t, err)
}
