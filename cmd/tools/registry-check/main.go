// cmd/tools/registry-check/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"technet-workers/internal/common/validation"
	"technet-workers/pkg/registry"

	sa "technet-workers/internal/workers/application/submit-application"
	sve "technet-workers/internal/workers/communication/send-verification-email"
	bc "technet-workers/internal/workers/listing/browse-companies"
	sj "technet-workers/internal/workers/listing/search-jobs"
	tfc "technet-workers/internal/workers/listing/toggle-favorite-company"
	uc "technet-workers/internal/workers/network/update-connection"
	ss "technet-workers/internal/workers/settings/sync-settings"
	wa "technet-workers/internal/workers/wizard/wizard-action"
)

// servedTaskTypes lists every job type the worker manager subscribes to.
func servedTaskTypes() []string {
	types := []string{sj.TaskType, bc.TaskType, tfc.TaskType, sa.TaskType, sve.TaskType, ss.TaskTypeLoad, ss.TaskTypeSave}
	types = append(types, uc.TaskTypes...)
	return append(types, wa.TaskTypes...)
}

var errInvalid = errors.New("registry check failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var path string
	root := &cobra.Command{
		Use:          "registry-check",
		Short:        "Inspect and validate the activity registry",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&path, "path", "", "Registry file (default: built-in registry)")

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the registered task types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := load(path)
			if err != nil {
				return err
			}
			for _, a := range reg.Activities {
				fmt.Fprintf(cmd.OutOrStdout(), "%-26s %-14s %-6s %s\n", a.TaskType, a.Category, a.Timeout, a.DisplayName)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Compile every schema and compare against the served task types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := load(path)
			if err != nil {
				return err
			}
			problems := validate(reg)
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), "-", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%w: %d problems", errInvalid, len(problems))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "registry is valid")
			return nil
		},
	})

	var task, varsPath string
	check := &cobra.Command{
		Use:   "check",
		Short: "Validate job variables against a task's input schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars, err := readVars(cmd.InOrStdin(), varsPath)
			if err != nil {
				return fmt.Errorf("read variables: %w", err)
			}
			reg, err := load(path)
			if err != nil {
				return err
			}
			v, err := validation.NewValidator(reg)
			if err != nil {
				return fmt.Errorf("compile schemas: %w", err)
			}
			result, err := v.Check(task, vars)
			if err != nil {
				return fmt.Errorf("variables are not valid JSON: %w", err)
			}
			if result.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "variables are valid")
				return nil
			}
			for _, msg := range result.GetErrorMessages() {
				fmt.Fprintln(cmd.OutOrStdout(), "-", msg)
			}
			return fmt.Errorf("%w: variables do not match %s", errInvalid, task)
		},
	}
	check.Flags().StringVar(&task, "task", "", "Task type whose input schema is used")
	check.Flags().StringVar(&varsPath, "vars", "-", "Job variables JSON file, - for stdin")
	_ = check.MarkFlagRequired("task")
	root.AddCommand(check)

	return root
}

// validate reports schema compile errors, bad timeouts and task types that
// are served but not registered, or registered but not served.
func validate(reg *registry.ActivityRegistry) []string {
	var problems []string
	if _, err := validation.NewValidator(reg); err != nil {
		problems = append(problems, err.Error())
	}

	registered := map[string]bool{}
	for _, a := range reg.Activities {
		registered[a.TaskType] = true
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				problems = append(problems, fmt.Sprintf("%s: bad timeout %q", a.TaskType, a.Timeout))
			}
		}
		if len(a.InputSchema) == 0 {
			problems = append(problems, fmt.Sprintf("%s: no input schema", a.TaskType))
		}
	}

	served := map[string]bool{}
	for _, t := range servedTaskTypes() {
		served[t] = true
		if !registered[t] {
			problems = append(problems, fmt.Sprintf("%s: served but not registered", t))
		}
	}
	for t := range registered {
		if !served[t] {
			problems = append(problems, fmt.Sprintf("%s: registered but no worker serves it", t))
		}
	}

	sort.Strings(problems)
	return problems
}

func load(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(path)
}

func readVars(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
