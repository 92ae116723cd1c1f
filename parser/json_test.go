package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pflow-xyz/go-synth/catalog"
)

const sampleCatalog = `{
  "components": [
    {"name": "add", "inputs": {"int": ["a", "b"]}, "output": "int"},
    {"name": "itoa", "inputs": {"int": ["v"]}, "output": "string"},
    {"name": "log", "inputs": {"string": ["msg"]}}
  ],
  "target": {"inputs": {"int": ["x", "y"]}, "output": "string"}
}`

func TestFromJSON(t *testing.T) {
	doc, err := FromJSON([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, doc.Components, 3)

	add := doc.Components[0]
	require.Equal(t, "add", add.Name)
	require.Equal(t, []string{"a", "b"}, add.Inputs["int"])
	require.Equal(t, "int", add.OutputType())

	// No output field: sentinel None type.
	require.Equal(t, catalog.NoneType, doc.Components[2].OutputType())

	require.Equal(t, "string", doc.Target.Output)
	require.Equal(t, []string{"x", "y"}, doc.Target.Inputs["int"])
}

func TestFromJSONInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"malformed", `{"components": [`},
		{"empty catalog", `{"components": [], "target": {"output": "int"}}`},
		{"unnamed component", `{"components": [{"inputs": {}}], "target": {"output": "int"}}`},
		{"duplicate component", `{"components": [{"name": "a", "output": "int"}, {"name": "a", "output": "int"}], "target": {"output": "int"}}`},
		{"missing target output", `{"components": [{"name": "a", "output": "int"}], "target": {}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tc.data))
			require.Error(t, err)
		})
	}
}

func TestRoundTripFile(t *testing.T) {
	doc, err := FromJSON([]byte(sampleCatalog))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, doc.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, doc.Components, loaded.Components)
	require.Equal(t, doc.Target, loaded.Target)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
