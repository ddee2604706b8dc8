package pullstrategy_test

import (
	"context"
	"errors"
	"sort"

	"github.com/temirov/pullstrategy/internal/repos/discovery"
)

type configurationWrite struct {
	repositoryPath string
	key            string
	value          string
}

type stubRepositoryManager struct {
	availabilityError error
	workingTrees      map[string]struct{}
	configurations    map[string]map[string]string
	writes            []configurationWrite
	failingKey        string
	availabilityCalls int
}

func newStubRepositoryManager(workingTrees ...string) *stubRepositoryManager {
	manager := &stubRepositoryManager{
		workingTrees:   map[string]struct{}{},
		configurations: map[string]map[string]string{},
	}
	for _, workingTree := range workingTrees {
		manager.workingTrees[workingTree] = struct{}{}
	}
	return manager
}

func (manager *stubRepositoryManager) CheckAvailability(context.Context) (string, error) {
	manager.availabilityCalls++
	if manager.availabilityError != nil {
		return "", manager.availabilityError
	}
	return "git version 2.43.0", nil
}

func (manager *stubRepositoryManager) IsInsideWorkTree(_ context.Context, path string) (bool, error) {
	_, isWorkingTree := manager.workingTrees[path]
	return isWorkingTree, nil
}

func (manager *stubRepositoryManager) GetLocalConfiguration(_ context.Context, repositoryPath string, key string) (string, bool, error) {
	value, present := manager.configurations[repositoryPath][key]
	return value, present, nil
}

func (manager *stubRepositoryManager) SetLocalConfiguration(_ context.Context, repositoryPath string, key string, value string) error {
	if key == manager.failingKey {
		return errors.New("error: could not lock config file .git/config: File exists")
	}
	manager.writes = append(manager.writes, configurationWrite{repositoryPath: repositoryPath, key: key, value: value})
	if manager.configurations[repositoryPath] == nil {
		manager.configurations[repositoryPath] = map[string]string{}
	}
	manager.configurations[repositoryPath][key] = value
	return nil
}

func (manager *stubRepositoryManager) configuredKeys(repositoryPath string) []string {
	keys := make([]string, 0, len(manager.configurations[repositoryPath]))
	for key := range manager.configurations[repositoryPath] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type stubLocator struct {
	candidates []discovery.Candidate
	err        error
	calls      int
}

func (locator *stubLocator) Locate(context.Context, discovery.Options) ([]discovery.Candidate, error) {
	locator.calls++
	if locator.err != nil {
		return nil, locator.err
	}
	return locator.candidates, nil
}

func candidatesAt(paths ...string) []discovery.Candidate {
	candidates := make([]discovery.Candidate, 0, len(paths))
	for _, path := range paths {
		candidates = append(candidates, discovery.Candidate{Path: path, Depth: 0})
	}
	return candidates
}
