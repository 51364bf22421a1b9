// Package mapfs implements a virtual fs.FS backed by an in-memory name-to-
// content table, adapted from the teacher's go/mapfs package (there used to
// stitch together embed.FS arguments discovered by AST inspection) for a
// different purpose here: giving the include-resolution tests a
// filesystem they can populate without touching disk.
package mapfs

import (
	"fmt"
	"io"
	"io/fs"
	"sort"
	"time"
)

// MapFS maps a virtual filename directly to its text content.
type MapFS map[string]string

var _ fs.FS = MapFS(nil)

func (m MapFS) Open(filename string) (fs.File, error) {
	if filename == "." {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		entries := make([]fs.DirEntry, len(names))
		for i, name := range names {
			entries[i] = fileDirEntry{name: name, size: int64(len(m[name]))}
		}
		return &virtualDir{entries: entries}, nil
	}

	content, ok := m[filename]
	if !ok {
		return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, filename)
	}
	return &virtualFile{name: filename, content: content}, nil
}

type virtualFile struct {
	name    string
	content string
	pos     int
}

func (f *virtualFile) Stat() (fs.FileInfo, error) {
	return fileDirEntry{name: f.name, size: int64(len(f.content))}.Info()
}

func (f *virtualFile) Read(b []byte) (int, error) {
	if f.pos >= len(f.content) {
		return 0, io.EOF
	}
	n := copy(b, f.content[f.pos:])
	f.pos += n
	return n, nil
}

func (f *virtualFile) Close() error { return nil }

// virtualDir implements fs.File + fs.ReadDirFile for the synthetic root.
type virtualDir struct {
	entries []fs.DirEntry
	pos     int
}

func (d *virtualDir) Stat() (fs.FileInfo, error) { return dirInfo{name: "."}, nil }
func (d *virtualDir) Read([]byte) (int, error)   { return 0, io.EOF }
func (d *virtualDir) Close() error                { return nil }

func (d *virtualDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if d.pos >= len(d.entries) {
		return nil, io.EOF
	}
	if n <= 0 || d.pos+n > len(d.entries) {
		n = len(d.entries) - d.pos
	}
	entries := d.entries[d.pos : d.pos+n]
	d.pos += n
	return entries, nil
}

type fileDirEntry struct {
	name string
	size int64
}

func (e fileDirEntry) Name() string               { return e.name }
func (e fileDirEntry) IsDir() bool                { return false }
func (e fileDirEntry) Type() fs.FileMode          { return 0 }
func (e fileDirEntry) Info() (fs.FileInfo, error) { return e, nil }
func (e fileDirEntry) Size() int64                { return e.size }
func (e fileDirEntry) Mode() fs.FileMode          { return 0 }
func (e fileDirEntry) ModTime() time.Time         { return time.Time{} }
func (e fileDirEntry) Sys() any                   { return nil }

type dirInfo struct{ name string }

func (d dirInfo) Name() string       { return d.name }
func (d dirInfo) Size() int64        { return 0 }
func (d dirInfo) Mode() fs.FileMode  { return fs.ModeDir }
func (d dirInfo) ModTime() time.Time { return time.Time{} }
func (d dirInfo) IsDir() bool        { return true }
func (d dirInfo) Sys() any           { return nil }
