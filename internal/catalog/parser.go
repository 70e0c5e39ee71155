package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedFile is the parsed form of a catalog seed file.
type SeedFile struct {
	Catalog SeedMeta    `yaml:"catalog"`
	Books   []SeedEntry `yaml:"books"`
}

// SeedMeta carries catalog-wide settings.
type SeedMeta struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
}

// SeedEntry is one book in a seed file.
type SeedEntry struct {
	ISBN        string `yaml:"isbn"`
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
	Cover       string `yaml:"cover"`
	Language    string `yaml:"language"`
	Genre       string `yaml:"genre"`
	Quantity    int    `yaml:"quantity"`
}

// EffectiveLanguage returns the language variant for an entry, falling back
// to the catalog-wide default when the entry does not set one.
func (f *SeedFile) EffectiveLanguage(entry *SeedEntry) string {
	if l := strings.TrimSpace(entry.Language); l != "" {
		return l
	}
	return strings.TrimSpace(f.Catalog.Language)
}

// Parser parses catalog seed files.
type Parser struct{}

// NewParser creates a new seed file parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses seed file content.
func (p *Parser) Parse(content []byte) (*SeedFile, error) {
	var file SeedFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &file, nil
}

// ParseFromString parses seed file content from a string.
func (p *Parser) ParseFromString(content string) (*SeedFile, error) {
	return p.Parse([]byte(content))
}
