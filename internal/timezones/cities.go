package timezones

import (
	_ "embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tartampluch/go-multitime/internal/config"
	"gopkg.in/yaml.v3"
)

//go:embed cities.yaml
var citiesYAML []byte

// City is a selectable city and the zone it keeps time in.
type City struct {
	Name string `yaml:"name"`
	Zone string `yaml:"zone"`
}

type rawCatalog struct {
	Version string `yaml:"version"`
	Cities  []City `yaml:"cities"`
}

// Catalog resolves user-typed city names to IANA zones.
// Matching is case-insensitive and ignores surrounding whitespace.
type Catalog struct {
	byKey map[string]City
	names []string // lowercase keys, sorted
}

// ParseCatalog reads a catalog from YAML. Entries without a name or zone are
// ignored, and the first spelling of a duplicated name wins.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCatalogLoad, err)
	}

	c := &Catalog{byKey: make(map[string]City, len(raw.Cities))}
	for _, city := range raw.Cities {
		city.Name = strings.TrimSpace(city.Name)
		city.Zone = strings.TrimSpace(city.Zone)
		if city.Name == "" || city.Zone == "" {
			continue
		}
		key := strings.ToLower(city.Name)
		if _, dup := c.byKey[key]; dup {
			continue
		}
		c.byKey[key] = city
		c.names = append(c.names, key)
	}
	sort.Strings(c.names)
	return c, nil
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	c, err := ParseCatalog(citiesYAML)
	if err != nil {
		return nil, err
	}
	slog.Debug(config.MsgCatalogLoaded,
		config.LogKeyComponent, config.CompTimezones,
		config.LogKeyCount, c.Len())
	return c, nil
}

// Lookup returns the city whose name matches exactly, ignoring case.
func (c *Catalog) Lookup(name string) (City, bool) {
	city, ok := c.byKey[strings.ToLower(strings.TrimSpace(name))]
	return city, ok
}

// Suggest returns up to limit city names starting with prefix, in alphabetical
// order. An empty prefix suggests nothing. A limit <= 0 means no limit.
func (c *Catalog) Suggest(prefix string, limit int) []string {
	key := strings.ToLower(strings.TrimSpace(prefix))
	if key == "" {
		return nil
	}

	start := sort.SearchStrings(c.names, key)
	var out []string
	for _, name := range c.names[start:] {
		if !strings.HasPrefix(name, key) {
			break
		}
		out = append(out, c.byKey[name].Name)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Len returns the number of distinct cities.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Cities returns every city in alphabetical order.
func (c *Catalog) Cities() []City {
	out := make([]City, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byKey[name])
	}
	return out
}
