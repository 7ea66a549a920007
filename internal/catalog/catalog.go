// Package catalog holds the read-only table of cities the bot knows about.
package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ErrInvalid is wrapped by every validation failure reported by New.
var ErrInvalid = errors.New("catalog: invalid city")

// City describes a single catalog entry. Area and Population are display strings.
type City struct {
	Name       string   `yaml:"name" db:"name"`
	Country    string   `yaml:"country" db:"country"`
	Latitude   float64  `yaml:"lat" db:"lat"`
	Longitude  float64  `yaml:"lon" db:"lon"`
	Area       string   `yaml:"area" db:"area"`
	Population string   `yaml:"population" db:"population"`
	PhotoURLs  []string `yaml:"photos" db:"-"`
}

// Catalog is an immutable, ordered set of cities keyed by name.
type Catalog struct {
	cities []City
	byName map[string]int
}

// New validates cities and builds a catalog preserving their order.
// Names must be non-empty and unique ignoring case; every city needs at least
// one absolute http(s) photo URL.
func New(cities []City) (*Catalog, error) {
	if len(cities) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalid)
	}
	c := &Catalog{
		cities: make([]City, 0, len(cities)),
		byName: make(map[string]int, len(cities)),
	}
	seen := make(map[string]string, len(cities))
	for i, city := range cities {
		city.Name = strings.TrimSpace(city.Name)
		if city.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalid, i)
		}
		key := strings.ToLower(city.Name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q duplicates %q", ErrInvalid, city.Name, prev)
		}
		if len(city.PhotoURLs) == 0 {
			return nil, fmt.Errorf("%w: %q has no photos", ErrInvalid, city.Name)
		}
		for _, raw := range city.PhotoURLs {
			if err := validatePhotoURL(raw); err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalid, city.Name, err)
			}
		}
		city.PhotoURLs = slices.Clone(city.PhotoURLs)
		seen[key] = city.Name
		c.byName[city.Name] = len(c.cities)
		c.cities = append(c.cities, city)
	}
	return c, nil
}

func validatePhotoURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("photo url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("photo url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("photo url %q: missing host", raw)
	}
	return nil
}

// Lookup returns the city stored under the exact name.
func (c *Catalog) Lookup(name string) (City, bool) {
	i, ok := c.byName[name]
	if !ok {
		return City{}, false
	}
	city := c.cities[i]
	city.PhotoURLs = slices.Clone(city.PhotoURLs)
	return city, true
}

// Names lists city names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.cities))
	for i, city := range c.cities {
		names[i] = city.Name
	}
	return names
}

// Len reports the number of cities.
func (c *Catalog) Len() int { return len(c.cities) }

// Resolve maps free user input onto a catalog name. Surrounding whitespace and
// letter case are ignored; anything short of full equality does not match.
func (c *Catalog) Resolve(raw string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(raw))
	if want == "" {
		return "", false
	}
	for _, city := range c.cities {
		if strings.ToLower(city.Name) == want {
			return city.Name, true
		}
	}
	return "", false
}
