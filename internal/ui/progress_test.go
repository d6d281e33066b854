package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationBar_RendersProgress(t *testing.T) {
	var buf bytes.Buffer
	bar := NewEvaluationBarWithWriter(4, "Evaluating candidates", &buf)

	for i := 0; i < 4; i++ {
		require.NoError(t, bar.Add(1))
	}
	require.NoError(t, bar.Finish())

	out := buf.String()
	assert.Contains(t, out, "Evaluating candidates")
	assert.Contains(t, out, "4/4")
}
