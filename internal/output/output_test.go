package output

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		ctx := WithPrinter(context.Background(), &buf)
		p := FromContext(ctx)
		require.NotNil(t, p)
		assert.Same(t, &buf, p.Writer())
	})

	t.Run("default to stdout when not set", func(t *testing.T) {
		t.Parallel()
		p := FromContext(context.Background())
		require.NotNil(t, p)
		assert.Equal(t, os.Stdout, p.Writer())
	})
}

func TestPrinter_Print(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	p.Print("a", "b")
	p.Printf(" %d", 1)
	p.Println()
	assert.Equal(t, "ab 1\n", buf.String())
}

type row struct {
	ID       int    `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Favorite bool   `json:"favorite" yaml:"favorite"`
}

func TestPrinter_Encode(t *testing.T) {
	t.Parallel()

	rows := []row{{ID: 1, Title: "Cooking", Favorite: true}}

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, New(&buf).Encode(FormatJSON, rows))
		assert.JSONEq(t, `[{"id":1,"title":"Cooking","favorite":true}]`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, New(&buf).Encode(FormatYAML, rows))
		assert.YAMLEq(t, "- id: 1\n  title: Cooking\n  favorite: true\n", buf.String())
	})

	t.Run("table is not an encoding", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		assert.Error(t, New(&buf).Encode(FormatTable, rows))
	})
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()

	for _, f := range []string{FormatTable, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateFormat(f), f)
	}
	assert.Error(t, ValidateFormat("xml"))
}
