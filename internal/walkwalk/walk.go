// Package walkwalk provides a deterministic, filterable filesystem walker
// used by the scan command to find files worth folding.
package walkwalk

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo describes a collected file.
type FileInfo struct {
	RelPath string // root-relative path with forward slashes
	AbsPath string // absolute filesystem path
	Size    int64  // size in bytes
	Ext     string // lowercase extension including dot (e.g., ".go")
}

// Options filters what Collect returns.
type Options struct {
	// Exts keeps only files with these lowercase extensions (".go").
	// Empty keeps every extension.
	Exts []string
	// Exclude skips files and directories whose base name starts with any
	// entry ("node_modules", "build").
	Exclude []string
	// MaxFileBytes skips files larger than this; 0 means no limit.
	MaxFileBytes int64
	// UseGitignore honors the root .gitignore.
	UseGitignore   bool
	FollowSymlinks bool
}

type walkState struct {
	opts     Options
	exts     map[string]struct{}
	root     string
	patterns []gitPattern
	files    []FileInfo
}

// Collect walks root and returns the matching files sorted by RelPath.
// Unreadable entries are skipped, not reported.
func Collect(root string, opts Options) ([]FileInfo, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	ws := &walkState{opts: opts, root: abs, exts: map[string]struct{}{}}
	for _, e := range opts.Exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		ws.exts[e] = struct{}{}
	}
	if opts.UseGitignore {
		// a missing .gitignore just means nothing is ignored
		ws.patterns, _ = parseGitignore(filepath.Join(abs, ".gitignore"))
	}
	if err := filepath.WalkDir(abs, ws.visit); err != nil {
		return nil, err
	}
	sort.Slice(ws.files, func(i, j int) bool { return ws.files[i].RelPath < ws.files[j].RelPath })
	return ws.files, nil
}

func (ws *walkState) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		return nil
	}
	rel, ok := ws.relative(path)
	if !ok {
		return nil
	}
	if rel == "." {
		return nil
	}
	if ws.shouldSkip(rel, d) {
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if d.IsDir() {
		if !ws.opts.FollowSymlinks && isSymlink(d) {
			return filepath.SkipDir
		}
		return nil
	}
	return ws.handleFile(path, rel, d)
}

func (ws *walkState) relative(path string) (string, bool) {
	rel, err := filepath.Rel(ws.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") || rel == ".." {
		return "", false
	}
	return rel, true
}

func (ws *walkState) shouldSkip(rel string, d fs.DirEntry) bool {
	base := filepath.Base(rel)
	for _, prefix := range ws.opts.Exclude {
		if prefix != "" && strings.HasPrefix(base, prefix) {
			return true
		}
	}
	return matchGitignore(ws.patterns, rel, d.IsDir())
}

func (ws *walkState) handleFile(path, rel string, d fs.DirEntry) error {
	if !ws.opts.FollowSymlinks && isSymlink(d) {
		return nil
	}
	info, err := d.Info()
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	if ws.opts.MaxFileBytes > 0 && info.Size() > ws.opts.MaxFileBytes {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if len(ws.exts) > 0 {
		if _, ok := ws.exts[ext]; !ok {
			return nil
		}
	}
	ws.files = append(ws.files, FileInfo{
		RelPath: rel,
		AbsPath: path,
		Size:    info.Size(),
		Ext:     ext,
	})
	return nil
}

// isSymlink reports whether the DirEntry is a symlink (file or directory).
func isSymlink(d fs.DirEntry) bool {
	return d.Type()&fs.ModeSymlink != 0
}
