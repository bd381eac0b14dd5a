package lapse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSinkFileSameLine(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
	require.NoError(t, err)
	defer f.Close()

	s := WriterSink(f)
	s.Write("...load", false)
	s.Write(" done in 0:00:01", true)

	raw, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "...load done in 0:00:01\n", string(raw))
}

func TestSinkFunc(t *testing.T) {
	var got []logLine
	s := SinkFunc(func(msg string, newline bool) {
		got = append(got, logLine{msg, newline})
	})

	s.Write("a", false)
	s.Write("b", true)

	assert.Equal(t, []logLine{{"a", false}, {"b", true}}, got)
}
