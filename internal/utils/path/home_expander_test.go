package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/pullstrategy/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/student"

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name         string
		input        string
		expectedPath string
	}{
		{name: "empty", input: "", expectedPath: ""},
		{name: "bare_tilde", input: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_slash", input: "~/", expectedPath: testHomeDirectoryConstant},
		{name: "nested", input: "~/courses/fall", expectedPath: filepath.Join(testHomeDirectoryConstant, "courses", "fall")},
		{name: "absolute", input: "/srv/courses", expectedPath: "/srv/courses"},
		{name: "relative", input: "courses", expectedPath: "courses"},
		{name: "other_user", input: "~instructor/courses", expectedPath: "~instructor/courses"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				return testHomeDirectoryConstant, nil
			})
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.input))
		})
	}
}

func TestHomeExpanderLeavesPathWhenHomeIsUnknown(testInstance *testing.T) {
	providerCalls := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		providerCalls++
		return "", errors.New("$HOME is not defined")
	})

	require.Equal(testInstance, "~/courses", expander.Expand("~/courses"))
	require.Equal(testInstance, "~", expander.Expand("~"))
	require.Equal(testInstance, 1, providerCalls)
}
