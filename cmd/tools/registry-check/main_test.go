// cmd/tools/registry-check/main_test.go
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technet-workers/pkg/registry"
)

func TestValidate_BuiltinRegistryMatchesWorkers(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)

	assert.Empty(t, validate(reg))
}

func TestValidate_ReportsDrift(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)

	drifted := &registry.ActivityRegistry{}
	for _, a := range reg.Activities {
		if a.TaskType == "search-jobs" {
			continue
		}
		if a.TaskType == "browse-companies" {
			a.Timeout = "ten seconds"
		}
		drifted.Activities = append(drifted.Activities, a)
	}
	drifted.Activities = append(drifted.Activities, registry.Activity{ID: "legacy", TaskType: "legacy-task"})

	problems := validate(drifted)
	assert.Contains(t, problems, "search-jobs: served but not registered")
	assert.Contains(t, problems, `browse-companies: bad timeout "ten seconds"`)
	assert.Contains(t, problems, "legacy-task: no input schema")
	assert.Contains(t, problems, "legacy-task: registered but no worker serves it")
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Validate(t *testing.T) {
	out, err := runCmd(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "registry is valid")
}

func TestRootCmd_Check(t *testing.T) {
	out, err := runCmd(t, `{"seekerId":"s-1","jobId":"j-1"}`, "check", "--task", "submit-application")
	require.NoError(t, err)
	assert.Contains(t, out, "variables are valid")

	out, err = runCmd(t, `{"seekerId":"s-1"}`, "check", "--task", "submit-application")
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "jobId")
}

func TestRootCmd_CheckRequiresTask(t *testing.T) {
	_, err := runCmd(t, "{}", "check")
	require.Error(t, err)
}
