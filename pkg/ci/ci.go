package ci

import (
	"os"
	"strings"
)

type vendor struct {
	name string
	env  []string
	// match, when set, replaces the plain presence check.
	match func() bool
}

var vendors = []vendor{
	{name: "GitHub Actions", env: []string{"GITHUB_ACTIONS"}},
	{name: "GitLab CI", env: []string{"GITLAB_CI"}},
	{name: "CircleCI", env: []string{"CIRCLECI"}},
	{name: "Travis CI", env: []string{"TRAVIS"}},
	{name: "Buildkite", env: []string{"BUILDKITE"}},
	{name: "Jenkins", env: []string{"JENKINS_URL", "BUILD_ID"}},
	{name: "TeamCity", env: []string{"TEAMCITY_VERSION"}},
	{name: "AppVeyor", env: []string{"APPVEYOR"}},
	{name: "Azure Pipelines", env: []string{"SYSTEM_TEAMFOUNDATIONCOLLECTIONURI"}},
	{name: "Bitbucket Pipelines", env: []string{"BITBUCKET_COMMIT"}},
	{name: "Drone", env: []string{"DRONE"}},
	{name: "dsari", env: []string{"DSARI"}},
	{name: "TaskCluster", env: []string{"TASK_ID", "RUN_ID"}},
	{name: "Codeship", match: func() bool { return os.Getenv("CI_NAME") == "codeship" }},
	{name: "sourcehut", match: func() bool { return os.Getenv("CI_NAME") == "sourcehut" }},
	{name: "Woodpecker", match: func() bool { return os.Getenv("CI") == "woodpecker" }},
	{name: "Heroku", match: func() bool { return strings.Contains(os.Getenv("NODE"), "/app/.heroku/node/bin/node") }},
}

// Provider returns the name of the CI system the process runs in, if any.
func Provider() (string, bool) {
	for _, v := range vendors {
		if v.match != nil {
			if v.match() {
				return v.name, true
			}
			continue
		}
		if allSet(v.env) {
			return v.name, true
		}
	}

	for _, key := range []string{"CI", "CONTINUOUS_INTEGRATION", "BUILD_NUMBER", "RUN_ID"} {
		if os.Getenv(key) != "" {
			return "unknown", true
		}
	}

	return "", false
}

func allSet(keys []string) bool {
	for _, key := range keys {
		if os.Getenv(key) == "" {
			return false
		}
	}
	return len(keys) > 0
}
