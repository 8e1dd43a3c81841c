package brands

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed brands.yaml
var defaultDictionary []byte

// Dictionary holds the brand lists each vendor mapping matches against.
type Dictionary struct {
	SerpAPI []string `yaml:"serpapi"`
	Rakuten []string `yaml:"rakuten"`
}

var bracketPattern = regexp.MustCompile(`【(.+?)】`)

// Load parses a YAML brand dictionary.
func Load(data []byte) (*Dictionary, error) {
	var d Dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse brand dictionary: %w", err)
	}
	return &d, nil
}

// Default returns the dictionary compiled into the binary.
func Default() *Dictionary {
	d, err := Load(defaultDictionary)
	if err != nil {
		panic(err)
	}
	return d
}

// Match returns the first brand in list contained in text, ignoring case.
func Match(text string, list []string) (string, bool) {
	upper := strings.ToUpper(text)
	for _, brand := range list {
		if strings.Contains(upper, strings.ToUpper(brand)) {
			return brand, true
		}
	}
	return "", false
}

// Bracketed returns the content of the first 【...】 pair in name, the way
// Japanese shops tag the brand in listing titles.
func Bracketed(name string) (string, bool) {
	m := bracketPattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}
