// internal/defs/loader.go
package defs

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultScenario names the scenario compiled into the binary.
const DefaultScenario = "default"

//go:embed scenarios/*.yaml
var scenarioFS embed.FS

// LoadScenario reads a scenario file. An empty path or DefaultScenario
// selects the embedded default.
func LoadScenario(path string) (*Scenario, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == DefaultScenario {
		data, err = scenarioFS.ReadFile("scenarios/" + DefaultScenario + ".yaml")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %q: %w", path, err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}
