package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/internal/cli/testutil"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    output.Mode
		wantErr bool
	}{
		{"", output.ModeAuto, false},
		{"auto", output.ModeAuto, false},
		{"TEXT", output.ModeText, false},
		{" markdown ", output.ModeMarkdown, false},
		{"json", output.ModeJSON, false},
		{"yaml", output.ModeYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := output.ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  output.Mode
		isTTY bool
		want  output.Mode
	}{
		{"auto on terminal", output.ModeAuto, true, output.ModeText},
		{"auto piped", output.ModeAuto, false, output.ModeMarkdown},
		{"explicit text piped", output.ModeText, false, output.ModeText},
		{"json on terminal", output.ModeJSON, true, output.ModeJSON},
		{"empty", "", false, output.ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := output.NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTerminal(t *testing.T) {
	r := output.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, output.ModeAuto)
	assert.False(t, r.IsTTY())
}

func TestRenderer_PipedTextHasNoANSI(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeText, false)
	tr.Header(1, "Rules")
	tr.Success("All files pass")
	tr.Muted("done")
	tr.Error("boom")

	testutil.AssertNoANSI(t, tr.Output())
	testutil.AssertNoANSI(t, tr.ErrorOutput())
	assert.Contains(t, tr.Output(), "Rules\n")
	assert.Contains(t, tr.Output(), "All files pass\n")
	assert.Equal(t, "error: boom\n", tr.ErrorOutput())
}

func TestRenderer_NoColorOnTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	r := output.NewRendererWithTTY(out, &bytes.Buffer{}, true, output.ModeText, output.WithNoColor(true))
	r.Success("ok")
	testutil.AssertNoANSI(t, out.String())
}

func TestRenderer_Markdown(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeAuto, false)
	tr.Header(2, "Dialects")
	tr.Success("clean")

	assert.Equal(t, "## Dialects\n\n**clean**\n", tr.Output())
	testutil.AssertValidMarkdown(t, tr.Output())
}

func TestRenderer_Table(t *testing.T) {
	rows := [][]string{{"ansi", ""}, {"postgres", "ansi"}}

	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeMarkdown, false)
		tr.Table([]string{"Name", "Base"}, rows)

		lines := strings.Split(strings.TrimSpace(tr.Output()), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "Name")
		assert.Contains(t, lines[3], "postgres")
		assert.True(t, strings.HasPrefix(lines[0], "|"))
	})

	t.Run("text", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeText, false)
		tr.Table([]string{"Name", "Base"}, rows)

		assert.Contains(t, tr.Output(), "┌")
		assert.Contains(t, tr.Output(), "postgres")
	})
}

func TestRenderer_Encoders(t *testing.T) {
	v := map[string]int{"count": 2}

	tr := testutil.NewTestRenderer(output.ModeJSON, false)
	require.NoError(t, tr.JSON(v))
	assert.Equal(t, "{\n  \"count\": 2\n}\n", tr.Output())

	tr = testutil.NewTestRenderer(output.ModeYAML, false)
	require.NoError(t, tr.YAML(v))
	assert.Equal(t, "count: 2\n", tr.Output())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", output.FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", output.FormatHeader(3, "Title"))
	assert.Equal(t, "- **Base:** ansi", output.FormatKeyValue("Base", "ansi"))
}
