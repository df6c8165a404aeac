package catalog

import (
	"strings"

	"cashflow-mcp/internal/cashflow"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ErrUnknownEntity is returned by Lookup when no profile carries the requested ID.
var ErrUnknownEntity = errors.New("unknown entity")

// Catalog is an ordered, read-only set of entity profiles.
type Catalog struct {
	profiles []cashflow.EntityProfile
	byID     map[string]int
}

// New indexes the given profiles. Missing or duplicate IDs and non-positive revenues are rejected.
func New(profiles []cashflow.EntityProfile) (*Catalog, error) {
	c := &Catalog{
		profiles: make([]cashflow.EntityProfile, 0, len(profiles)),
		byID:     make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, errors.Errorf("entity %q has no id", p.Name)
		}
		if _, dup := c.byID[id]; dup {
			return nil, errors.Errorf("duplicate entity id %q", id)
		}
		if !(p.AnnualRevenue > 0) {
			return nil, errors.Errorf("entity %q: annual revenue must be positive, got %v", id, p.AnnualRevenue)
		}
		p.ID = id
		c.byID[id] = len(c.profiles)
		c.profiles = append(c.profiles, p)
	}
	return c, nil
}

// Default returns the built-in demo portfolio.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads profiles from a YAML, JSON or TOML file under the "entities" key.
// An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading profiles file %s", path)
	}

	var profiles []cashflow.EntityProfile
	if err := v.UnmarshalKey("entities", &profiles); err != nil {
		return nil, errors.Wrapf(err, "decoding entities from %s", path)
	}
	if len(profiles) == 0 {
		return nil, errors.Errorf("profiles file %s declares no entities", path)
	}

	c, err := New(profiles)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	log.Info().Str("path", path).Int("entities", c.Len()).Msg("Loaded entity profiles")
	return c, nil
}

// List returns the profiles in declaration order.
func (c *Catalog) List() []cashflow.EntityProfile {
	out := make([]cashflow.EntityProfile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// Len reports the number of profiles.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

// Lookup finds a profile by ID.
func (c *Catalog) Lookup(id string) (cashflow.EntityProfile, error) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return cashflow.EntityProfile{}, errors.Wrapf(ErrUnknownEntity, "id %q", id)
	}
	return c.profiles[i], nil
}
