package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Scenario describes a workload to run under the marker protocol. Scenarios
// are stored as YAML files alongside the workload they describe.
type Scenario struct {
	// Name identifies the scenario; it must not contain spaces.
	Name string `yaml:"name" validate:"required"`

	// Description is free-form documentation.
	Description string `yaml:"description"`

	// Command is the workload command line; the first element is the
	// executable.
	Command []string `yaml:"command" validate:"required,min=1,dive,required"`

	// Iterations is the number of measured iterations to configure on the
	// workload. Nil means the default of 1; an explicit 0 is honored as-is
	// (the workload will count but never raise).
	Iterations *uint64 `yaml:"iterations"`

	// Timeout bounds a single workload run. Zero means no timeout.
	Timeout Duration `yaml:"timeout"`

	// Env holds extra environment variables for the workload.
	Env map[string]string `yaml:"env"`

	// Tests are input/expected-output pairs to run the workload against.
	// An empty list means one run with no stdin and no output check.
	Tests []Test `yaml:"tests"`
}

// Test is one workload invocation: extra arguments, stdin to feed, and the
// stdout expected back. An empty ExpectedStdout disables the output check.
type Test struct {
	ID             string   `yaml:"id"`
	Args           []string `yaml:"args"`
	Stdin          string   `yaml:"stdin"`
	ExpectedStdout string   `yaml:"expected_stdout"`
}

// IterationCount resolves the scenario's iteration budget, defaulting to 1
// when the mapping is absent.
func (s *Scenario) IterationCount() uint64 {
	if s.Iterations == nil {
		return 1
	}
	return *s.Iterations
}

// Duration decodes YAML scalars like "10s" or "2m" that time.Duration
// cannot unmarshal directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

var validate = validator.New()

// ParseScenario decodes and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if strings.ContainsRune(s.Name, ' ') {
		return nil, fmt.Errorf("invalid scenario: name %q must not contain spaces", s.Name)
	}
	for i := range s.Tests {
		if s.Tests[i].ID == "" {
			s.Tests[i].ID = "default"
		}
	}
	return &s, nil
}

// LoadScenario reads and parses the scenario file at path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}
