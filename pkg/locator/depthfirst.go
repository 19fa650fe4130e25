// SPDX-License-Identifier: Apache-2.0
package locator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

// DepthFirst searches a directory tree for a jar. The files of a directory
// are checked before any of its subdirectories are descended into, and the
// first match wins.
type DepthFirst struct {
	root   string
	logger hclog.Logger
}

// NewDepthFirst creates a depth-first locator rooted at root. The root is
// made absolute once and never changes afterwards.
func NewDepthFirst(root string, logger hclog.Logger) (*DepthFirst, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty search root", fserrors.ErrFilesystemAccess)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving search root %s: %v", fserrors.ErrFilesystemAccess, root, err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &DepthFirst{
		root:   abs,
		logger: logger.Named("locator"),
	}, nil
}

// Root returns the absolute search root.
func (l *DepthFirst) Root() string {
	return l.root
}

// Locate finds the jar with the given filename beneath the search root.
func (l *DepthFirst) Locate(filename string) (string, bool, error) {
	path, found, err := l.search(l.root, filename)
	if err != nil {
		return "", false, err
	}
	if found {
		l.logger.Debug("✅ Located jar", "filename", filename, "path", path)
	} else {
		l.logger.Debug("⚠️ Jar not found under search root", "filename", filename, "root", l.root)
	}
	return path, found, nil
}

func (l *DepthFirst) search(dir, filename string) (string, bool, error) {
	l.logger.Trace("🔍 Searching directory", "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, fmt.Errorf("%w: reading %s: %v", fserrors.ErrFilesystemAccess, dir, err)
	}

	var dirs []string
	for _, entry := range entries {
		switch kindOf(dir, entry) {
		case kindFile:
			if entry.Name() == filename {
				return filepath.Join(dir, entry.Name()), true, nil
			}
		case kindDir:
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}

	for _, sub := range dirs {
		path, found, err := l.search(sub, filename)
		if err != nil || found {
			return path, found, err
		}
	}

	return "", false, nil
}

type entryKind int

const (
	kindOther entryKind = iota
	kindFile
	kindDir
)

// kindOf classifies a directory entry. Symlinks to regular files count as
// files; symlinks to directories are never descended, which keeps link
// cycles from recursing forever.
func kindOf(dir string, entry os.DirEntry) entryKind {
	mode := entry.Type()
	switch {
	case mode.IsRegular():
		return kindFile
	case mode.IsDir():
		return kindDir
	case mode&os.ModeSymlink != 0:
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err == nil && info.Mode().IsRegular() {
			return kindFile
		}
	}
	return kindOther
}
