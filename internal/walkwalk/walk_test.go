package walkwalk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func relPaths(files []FileInfo) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	return out
}

func TestCollect_FiltersAndSorts(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.go":                "package b\n",
		"a/x.GO":              "package x\n",
		"a/readme.md":         "# hi\n",
		"node_modules/m.go":   "package m\n",
		"build-out/gen.go":    "package gen\n",
		"big.go":              "package big // padded past the limit\n",
		".gitignore":          "*.tmp\n/gen/\n!keep.tmp\n",
		"gen/skip.go":         "package gen\n",
		"sub/gen/kept.go":     "package gen\n",
		"scratch.tmp":         "x",
		"keep.tmp":            "x",
	})

	files, err := Collect(root, Options{
		Exts:         []string{".go", "tmp"},
		Exclude:      []string{"node_modules", "build"},
		MaxFileBytes: 20,
		UseGitignore: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a/x.GO", "b.go", "keep.tmp", "sub/gen/kept.go"}, relPaths(files))
	assert.Equal(t, ".go", files[0].Ext)
	assert.Equal(t, int64(len("package x\n")), files[0].Size)
	assert.True(t, filepath.IsAbs(files[0].AbsPath))
}

func TestCollect_NoFilters(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "a", "d/b.py": "b", ".gitignore": "*.txt\n"})

	files, err := Collect(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore", "a.txt", "d/b.py"}, relPaths(files))
}

func TestCollect_MissingRoot(t *testing.T) {
	files, err := Collect(filepath.Join(t.TempDir(), "absent"), Options{})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMatchGitignore(t *testing.T) {
	var pats []gitPattern
	for _, line := range []string{"# comment", "", "*.log", "docs/**/draft.md", "/vendor/", "!important.log"} {
		if p, ok := parseGitLine(line); ok {
			pats = append(pats, p)
		}
	}
	require.Len(t, pats, 4)

	tests := []struct {
		rel   string
		isDir bool
		want  bool
	}{
		{"x.log", false, true},
		{"deep/x.log", false, true},
		{"important.log", false, false},
		{"docs/a/b/draft.md", false, true},
		{"vendor", true, true},
		{"vendor", false, false},
		{"src/vendor", true, false},
		{"main.go", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchGitignore(pats, tt.rel, tt.isDir), tt.rel)
	}
}
