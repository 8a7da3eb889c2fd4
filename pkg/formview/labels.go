package formview

import (
	"fmt"
	"html"
	"os"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

// Labels holds every user visible string of the form.
type Labels struct {
	Heading       string `yaml:"heading" json:"heading"`
	FirstName     string `yaml:"first_name" json:"first_name"`
	LastName      string `yaml:"last_name" json:"last_name"`
	IsOver21      string `yaml:"is_over_21" json:"is_over_21"`
	FavoriteDrink string `yaml:"favorite_drink" json:"favorite_drink"`
	Cancel        string `yaml:"cancel" json:"cancel"`
	Submit        string `yaml:"submit" json:"submit"`
}

// DefaultLabels returns the built-in labels.
func DefaultLabels() Labels {
	return Labels{
		Heading:       "React UI Test",
		FirstName:     "입력1",
		LastName:      "입력2",
		IsOver21:      "조건1",
		FavoriteDrink: "조건2",
		Cancel:        "취소",
		Submit:        "적용",
	}
}

// Merge returns l with every non-empty field of override applied.
func (l Labels) Merge(override Labels) Labels {
	pick := func(base, over string) string {
		if strings.TrimSpace(over) == "" {
			return base
		}
		return strings.TrimSpace(over)
	}
	return Labels{
		Heading:       pick(l.Heading, override.Heading),
		FirstName:     pick(l.FirstName, override.FirstName),
		LastName:      pick(l.LastName, override.LastName),
		IsOver21:      pick(l.IsOver21, override.IsOver21),
		FavoriteDrink: pick(l.FavoriteDrink, override.FavoriteDrink),
		Cancel:        pick(l.Cancel, override.Cancel),
		Submit:        pick(l.Submit, override.Submit),
	}
}

// LoadLabels reads a YAML labels file and merges it over the defaults.
func LoadLabels(path string) (Labels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Labels{}, fmt.Errorf("formview: read labels %s: %w", path, err)
	}
	labels, err := ParseLabels(data)
	if err != nil {
		return Labels{}, fmt.Errorf("formview: labels %s: %w", path, err)
	}
	return labels, nil
}

// ParseLabels decodes YAML labels, strips any markup from the values and
// merges them over the defaults.
func ParseLabels(data []byte) (Labels, error) {
	var raw Labels
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Labels{}, fmt.Errorf("formview: parse labels: %w", err)
	}
	return DefaultLabels().Merge(raw.sanitized()), nil
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

func (l Labels) sanitized() Labels {
	return Labels{
		Heading:       plainText(l.Heading),
		FirstName:     plainText(l.FirstName),
		LastName:      plainText(l.LastName),
		IsOver21:      plainText(l.IsOver21),
		FavoriteDrink: plainText(l.FavoriteDrink),
		Cancel:        plainText(l.Cancel),
		Submit:        plainText(l.Submit),
	}
}

// plainText drops markup and returns unescaped text; renderers escape on
// output.
func plainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(labelPolicy.Sanitize(trimmed)))
}
