package loader

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/usersrc2xml/internal/usersrc"
)

func TestParseYAML(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *usersrc.Source
	}{
		{
			name: "empty document",
			src:  "",
			want: &usersrc.Source{},
		},
		{
			name: "null document",
			src:  "~\n",
			want: &usersrc.Source{},
		},
		{
			name: "all bindings",
			src: `envVars:
  PATH: /usr/bin
  LEVEL: 3
aliases: {ll: "ls -l"}
bashCode:
  - echo one
  - ~
cmdCode: null
other: [1, 2, {deep: true}]
`,
			want: &usersrc.Source{
				Env: usersrc.Mapping{
					{Name: "PATH", Value: "/usr/bin"},
					{Name: "LEVEL", Value: "3"},
				},
				Aliases:  usersrc.Mapping{{Name: "ll", Value: "ls -l"}},
				BashCode: usersrc.Sequence{"echo one", ""},
			},
		},
		{
			name: "key order is kept",
			src:  "envVars:\n  Z: z\n  A: a\n  M: m\n",
			want: &usersrc.Source{Env: usersrc.Mapping{
				{Name: "Z", Value: "z"},
				{Name: "A", Value: "a"},
				{Name: "M", Value: "m"},
			}},
		},
		{
			name: "anchors resolve",
			src:  "shared: &shared\n  - echo shared\nbashCode: *shared\n",
			want: &usersrc.Source{BashCode: usersrc.Sequence{"echo shared"}},
		},
		{
			name: "aliased scalars inside a list",
			src:  "base: &base echo base\ncmdCode:\n  - *base\n  - echo own\n",
			want: &usersrc.Source{CmdCode: usersrc.Sequence{"echo base", "echo own"}},
		},
		{
			name: "empty collections are defined",
			src:  "envVars: {}\ncmdCode: []\n",
			want: &usersrc.Source{Env: usersrc.Mapping{}, CmdCode: usersrc.Sequence{}},
		},
		{
			name: "json",
			src:  `{"aliases": {"dmake": "make -j 16"}, "cmdCode": ["echo hi"]}`,
			want: &usersrc.Source{
				Aliases: usersrc.Mapping{{Name: "dmake", Value: "make -j 16"}},
				CmdCode: usersrc.Sequence{"echo hi"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseYAML("userSrc.yaml", []byte(tt.src))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseYAML() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		target  error
		binding string
		line    int
	}{
		{
			name:    "list for mapping",
			src:     "envVars:\n  - PATH\n",
			target:  usersrc.ErrShape,
			binding: "envVars",
			line:    2,
		},
		{
			name:    "mapping for list",
			src:     "bashCode:\n  run: echo\n",
			target:  usersrc.ErrShape,
			binding: "bashCode",
			line:    2,
		},
		{
			name:    "scalar for mapping",
			src:     "aliases: ll\n",
			target:  usersrc.ErrShape,
			binding: "aliases",
			line:    1,
		},
		{
			name:    "nested value",
			src:     "envVars:\n  PATH: [a, b]\n",
			target:  usersrc.ErrShape,
			binding: "envVars",
			line:    2,
		},
		{
			name:    "alias to a list inside a list",
			src:     "shared: &shared [a, b]\nbashCode:\n  - *shared\n",
			target:  usersrc.ErrShape,
			binding: "bashCode",
			line:    3,
		},
		{
			name:    "duplicate key",
			src:     "envVars:\n  A: one\n  A: two\n",
			target:  usersrc.ErrDuplicateKey,
			binding: "envVars",
			line:    3,
		},
		{
			name:    "binding defined twice",
			src:     "cmdCode: [a]\ncmdCode: [b]\n",
			target:  usersrc.ErrDuplicateBinding,
			binding: "cmdCode",
			line:    2,
		},
		{
			name:   "root is a list",
			src:    "- envVars\n",
			target: usersrc.ErrShape,
			line:   1,
		},
		{
			name:   "syntax error",
			src:    "envVars: [unclosed\n",
			target: usersrc.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseYAML("userSrc.yaml", []byte(tt.src))

			pe := parseErr(t, err, tt.target)
			assert.Equal(t, tt.binding, pe.Binding)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

// nestedAliases builds a document whose anchors each hold ten aliases to
// the previous level, so expanding bashCode fully would need 10^levels nodes.
func nestedAliases(levels int) string {
	var sb strings.Builder
	sb.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= levels; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*l%d, ", i-1), 10), ", ")
		fmt.Fprintf(&sb, "l%d: &l%d [%s]\n", i, i, refs)
	}
	fmt.Fprintf(&sb, "bashCode: *l%d\n", levels)
	return sb.String()
}

func TestParseYAML_NestedAliasesFailFast(t *testing.T) {
	src := nestedAliases(9)
	require.Less(t, len(src), 1024)

	_, err := parseYAML("userSrc.yaml", []byte(src))

	pe := parseErr(t, err, usersrc.ErrShape)
	assert.Equal(t, "bashCode", pe.Binding)
	assert.Contains(t, err.Error(), "nested arrays are not allowed")
}

func TestParseYAML_UnusedAnchorsAreNotExpanded(t *testing.T) {
	src := nestedAliases(9) + "cmdCode: [echo ok]\n"
	src = strings.Replace(src, "bashCode:", "other:", 1)

	got, err := parseYAML("userSrc.yaml", []byte(src))

	require.NoError(t, err)
	assert.Equal(t, usersrc.Sequence{"echo ok"}, got.CmdCode)
	assert.Nil(t, got.BashCode)
}
