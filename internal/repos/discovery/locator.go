package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/pullstrategy/internal/repos/shared"
)

const (
	proberMissingMessageConstant          = "working tree prober not configured"
	prefixRequiredMessageConstant         = "repository name prefix must be provided"
	invalidMaxDepthMessageConstant        = "invalid max depth"
	negativeMaxDepthTemplateConstant      = "%w: must be zero or greater, got %d"
	searchRootErrorTemplateConstant       = "unable to read search root %s: %v"
	probeErrorTemplateConstant            = "unable to verify %s: %w"
	unreadableDirectoryLogMessageConstant = "skipping unreadable directory"
	discardedCandidateLogMessageConstant  = "prefix match is not a git working tree"
	acceptedCandidateLogMessageConstant   = "found repository candidate"
	logFieldPathConstant                  = "path"
	logFieldDepthConstant                 = "depth"
)

// ErrWorkingTreeProberNotConfigured indicates the Locator was built without a prober.
var ErrWorkingTreeProberNotConfigured = errors.New(proberMissingMessageConstant)

// ErrPrefixRequired indicates an empty name prefix.
var ErrPrefixRequired = errors.New(prefixRequiredMessageConstant)

// ErrNegativeMaxDepth indicates a depth bound below zero.
var ErrNegativeMaxDepth = errors.New(invalidMaxDepthMessageConstant)

// SearchRootError reports a search root that could not be read.
type SearchRootError struct {
	Root  string
	Cause error
}

// Error describes the unreadable root.
func (rootError SearchRootError) Error() string {
	return fmt.Sprintf(searchRootErrorTemplateConstant, rootError.Root, rootError.Cause)
}

// Unwrap exposes the underlying filesystem error.
func (rootError SearchRootError) Unwrap() error {
	return rootError.Cause
}

// LocatorDependencies enumerates collaborators required by the Locator.
type LocatorDependencies struct {
	FileSystem afero.Fs
	Prober     shared.WorkingTreeProber
	Logger     *zap.Logger
}

// Options bound a single search.
type Options struct {
	SearchRoot string
	Prefix     string
	MaxDepth   int
}

// Candidate is a verified working tree whose directory name matched the prefix.
type Candidate struct {
	Path string
	// Depth is the depth of the level at which the name was matched; the search root is depth 0.
	Depth int
}

// Locator finds prefix-named git working trees.
type Locator struct {
	walker *Walker
	prober shared.WorkingTreeProber
	logger *zap.Logger
}

// NewLocator constructs a Locator from the provided dependencies.
func NewLocator(dependencies LocatorDependencies) (*Locator, error) {
	if dependencies.Prober == nil {
		return nil, ErrWorkingTreeProberNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{
		walker: NewWalker(dependencies.FileSystem),
		prober: dependencies.Prober,
		logger: logger,
	}, nil
}

// Locate walks the search root and returns every prefix-named subdirectory that is a git working tree,
// in walk order. Directories that match the prefix but fail the probe are dropped without error.
func (locator *Locator) Locate(executionContext context.Context, options Options) ([]Candidate, error) {
	if len(options.Prefix) == 0 {
		return nil, ErrPrefixRequired
	}
	if options.MaxDepth < 0 {
		return nil, fmt.Errorf(negativeMaxDepthTemplateConstant, ErrNegativeMaxDepth, options.MaxDepth)
	}

	var candidates []Candidate
	for level, readError := range locator.walker.Levels(options.SearchRoot, options.MaxDepth) {
		if contextError := executionContext.Err(); contextError != nil {
			return nil, contextError
		}

		if readError != nil {
			if level.Depth == 0 {
				return nil, SearchRootError{Root: options.SearchRoot, Cause: readError}
			}
			locator.logger.Debug(unreadableDirectoryLogMessageConstant, zap.String(logFieldPathConstant, level.Path), zap.Error(readError))
			continue
		}

		for _, subdirectory := range level.Subdirectories {
			if !strings.HasPrefix(subdirectory.Name, options.Prefix) {
				continue
			}
			if contextError := executionContext.Err(); contextError != nil {
				return nil, contextError
			}

			isWorkingTree, probeError := locator.prober.IsInsideWorkTree(executionContext, subdirectory.Path)
			if probeError != nil {
				return nil, fmt.Errorf(probeErrorTemplateConstant, subdirectory.Path, probeError)
			}
			if !isWorkingTree {
				locator.logger.Debug(discardedCandidateLogMessageConstant, zap.String(logFieldPathConstant, subdirectory.Path))
				continue
			}

			locator.logger.Debug(acceptedCandidateLogMessageConstant, zap.String(logFieldPathConstant, subdirectory.Path), zap.Int(logFieldDepthConstant, level.Depth))
			candidates = append(candidates, Candidate{Path: subdirectory.Path, Depth: level.Depth})
		}
	}

	return candidates, nil
}

// Paths returns the candidate paths in order.
func Paths(candidates []Candidate) []string {
	paths := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		paths = append(paths, candidate.Path)
	}
	return paths
}
