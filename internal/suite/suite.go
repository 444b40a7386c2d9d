package suite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"qtb/internal/domain"
)

// Command is one runner invocation as an argv vector.
type Command []string

// Compile holds the optional per-side compile commands run before the
// suite's cases.
type Compile struct {
	CPP  Command `yaml:"cpp"`
	Mojo Command `yaml:"mojo"`
}

// Case is one compared test case as declared in a suite file. Outputs come
// either embedded (cpp_output/mojo_output) or from running the side's
// command (cpp_cmd/mojo_cmd).
type Case struct {
	ID          string        `yaml:"id"`
	Description string        `yaml:"description"`
	Inputs      domain.Inputs `yaml:"inputs"`
	CPPOutput   string        `yaml:"cpp_output"`
	MojoOutput  string        `yaml:"mojo_output"`
	CPPCmd      Command       `yaml:"cpp_cmd"`
	MojoCmd     Command       `yaml:"mojo_cmd"`
}

// Suite is one comparison suite file.
type Suite struct {
	Name    string  `yaml:"name"`
	Compile Compile `yaml:"compile"`
	Cases   []Case  `yaml:"cases"`
}

// Load reads and validates one suite file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", path, err)
	}

	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("suite %s declares no cases", path)
	}
	seen := make(map[string]bool)
	for i, c := range s.Cases {
		if c.ID == "" {
			return nil, fmt.Errorf("suite %s: case %d has no id", path, i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("suite %s: duplicate case id %q", path, c.ID)
		}
		seen[c.ID] = true
		if len(c.CPPCmd) == 0 && c.CPPOutput == "" && len(c.MojoCmd) == 0 && c.MojoOutput == "" {
			return nil, fmt.Errorf("suite %s: case %q declares neither outputs nor commands", path, c.ID)
		}
	}
	return &s, nil
}

// LoadAll loads every given suite file, failing on the first bad one.
func LoadAll(paths []string) ([]*Suite, error) {
	var suites []*Suite
	for _, path := range paths {
		s, err := Load(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// CaseCount returns the total case count across suites.
func CaseCount(suites []*Suite) int {
	total := 0
	for _, s := range suites {
		total += len(s.Cases)
	}
	return total
}
