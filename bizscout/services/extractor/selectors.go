package extractor

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed selectors.yaml
var defaultSelectorsYAML []byte

type ReviewSelectors struct {
	Item  string `yaml:"item"`
	Stars string `yaml:"stars"`
	Text  string `yaml:"text"`
	Limit int    `yaml:"limit"`
}

// MapsSelectors drives the rendered maps-page strategy.
type MapsSelectors struct {
	SearchURL   string          `yaml:"search_url"`
	Name        string          `yaml:"name"`
	Rating      string          `yaml:"rating"`
	ReviewCount string          `yaml:"review_count"`
	Address     string          `yaml:"address"`
	Phone       string          `yaml:"phone"`
	Website     string          `yaml:"website"`
	Hours       string          `yaml:"hours"`
	Categories  string          `yaml:"categories"`
	Photo       string          `yaml:"photo"`
	Description string          `yaml:"description"`
	Reviews     ReviewSelectors `yaml:"reviews"`
}

// SearchSelectors drives the static search-results strategy.
// Name holds alternatives tried in order.
type SearchSelectors struct {
	SearchURL   string   `yaml:"search_url"`
	QuerySuffix string   `yaml:"query_suffix"`
	Name        []string `yaml:"name"`
	Rating      string   `yaml:"rating"`
	ReviewCount string   `yaml:"review_count"`
	Address     string   `yaml:"address"`
	Phone       string   `yaml:"phone"`
	Website     string   `yaml:"website"`
	Description string   `yaml:"description"`
}

type Selectors struct {
	Maps   MapsSelectors   `yaml:"maps"`
	Search SearchSelectors `yaml:"search"`
}

// DefaultSelectors returns the embedded selector profile.
func DefaultSelectors() Selectors {
	s, err := parseSelectors(defaultSelectorsYAML)
	if err != nil {
		panic("extractor: embedded selectors.yaml is invalid: " + err.Error())
	}
	return s
}

// LoadSelectors reads a selector profile from path. Keys missing from the
// file keep their embedded defaults. An empty path returns the defaults.
func LoadSelectors(path string) (Selectors, error) {
	if path == "" {
		return DefaultSelectors(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Selectors{}, eris.Wrapf(err, "extractor: read selectors %s", path)
	}
	s := DefaultSelectors()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Selectors{}, eris.Wrapf(err, "extractor: parse selectors %s", path)
	}
	if s.Maps.Name == "" || len(s.Search.Name) == 0 {
		return Selectors{}, eris.Errorf("extractor: selectors %s: name selectors are required", path)
	}
	return s, nil
}

// YAML renders the profile, e.g. for the CLI.
func (s Selectors) YAML() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", eris.Wrap(err, "extractor: marshal selectors")
	}
	return string(out), nil
}

func parseSelectors(data []byte) (Selectors, error) {
	var s Selectors
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Selectors{}, err
	}
	if s.Maps.Reviews.Limit <= 0 {
		s.Maps.Reviews.Limit = 5
	}
	return s, nil
}
