package discovery

import (
	"iter"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Subdirectory is an immediate child directory of a walked level.
type Subdirectory struct {
	Name string
	Path string
	// Symlink marks a child reached through a symbolic link; the walk never descends into it.
	Symlink bool
}

// Level is one directory visited by the walk together with its child directories in lexical order.
type Level struct {
	Path           string
	Depth          int
	Subdirectories []Subdirectory
}

// Walker enumerates directory levels on a filesystem.
type Walker struct {
	fileSystem afero.Fs
}

// NewWalker constructs a Walker over the provided filesystem, defaulting to the operating system.
func NewWalker(fileSystem afero.Fs) *Walker {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Walker{fileSystem: fileSystem}
}

// Levels returns a single-pass iterator over the directories at depth 0 through maxDepth below root.
// Levels are produced depth first; every child of a level is reported with that level before the
// walk descends into the first child. A directory that cannot be read is yielded with its error
// and is not descended.
func (walker *Walker) Levels(root string, maxDepth int) iter.Seq2[Level, error] {
	return func(yield func(Level, error) bool) {
		if maxDepth < 0 {
			return
		}

		pending := []Level{{Path: root, Depth: 0}}
		for len(pending) > 0 {
			current := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			subdirectories, readError := walker.readSubdirectories(current.Path)
			if readError != nil {
				if !yield(current, readError) {
					return
				}
				continue
			}

			current.Subdirectories = subdirectories
			if !yield(current, nil) {
				return
			}

			if current.Depth >= maxDepth {
				continue
			}
			for index := len(subdirectories) - 1; index >= 0; index-- {
				if subdirectories[index].Symlink {
					continue
				}
				pending = append(pending, Level{Path: subdirectories[index].Path, Depth: current.Depth + 1})
			}
		}
	}
}

func (walker *Walker) readSubdirectories(directoryPath string) ([]Subdirectory, error) {
	entries, readError := afero.ReadDir(walker.fileSystem, directoryPath)
	if readError != nil {
		return nil, readError
	}

	subdirectories := make([]Subdirectory, 0, len(entries))
	for _, entry := range entries {
		entryPath := filepath.Join(directoryPath, entry.Name())
		if entry.IsDir() {
			subdirectories = append(subdirectories, Subdirectory{Name: entry.Name(), Path: entryPath})
			continue
		}
		if entry.Mode()&os.ModeSymlink == 0 {
			continue
		}
		targetInfo, statError := walker.fileSystem.Stat(entryPath)
		if statError != nil || !targetInfo.IsDir() {
			continue
		}
		subdirectories = append(subdirectories, Subdirectory{Name: entry.Name(), Path: entryPath, Symlink: true})
	}
	return subdirectories, nil
}
