package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/multierr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Team string

const (
	Attackers Team = "attackers"
	Defenders Team = "defenders"
)

const (
	TeamSize           = 5
	DefaultHealth      = 100
	DefaultArmor       = 0
	DefaultBaseDamage  = 40
	MaxGadgetsPerRound = 50
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type Ability struct {
	Name        string `json:"name"`
	CooldownMs  int    `json:"cooldownMs"`
	DurationMs  int    `json:"durationMs,omitempty"`
	Charges     int    `json:"charges,omitempty"`
	Description string `json:"description"`
}

type Gadget struct {
	Name    string `json:"name"`
	Charges int    `json:"charges"`
}

type Loadout struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type Operator struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Team    Team    `json:"team"`
	Health  int     `json:"health"`
	Armor   int     `json:"armor"`
	Speed   int     `json:"speed"`
	Ability Ability `json:"ability"`
	Gadget  *Gadget `json:"gadget,omitempty"`
	Weapons Loadout `json:"weapons"`
}

type Recoil struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
}

type Weapon struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Damage       int     `json:"damage"`
	FireRate     int     `json:"fireRate"` // rounds per minute
	MagazineSize int     `json:"magazineSize"`
	ReloadTime   float64 `json:"reloadTime"` // seconds
	Recoil       Recoil  `json:"recoil"`
	Range        int     `json:"range"`
}

// HitMultipliers scale client-reported base damage by hit location.
type HitMultipliers struct {
	Head float64 `json:"head"`
	Body float64 `json:"body"`
	Limb float64 `json:"limb"`
}

type Movement struct {
	Walk   float64 `json:"walk"`
	Crouch float64 `json:"crouch"`
	Sprint float64 `json:"sprint"`
}

type Vision struct {
	ConeAngle float64 `json:"coneAngle"` // degrees
	Range     float64 `json:"range"`
}

// Timings are parsed from the environment (see internal/config), so they carry
// env tags alongside the catalog defaults.
type Timings struct {
	OperatorSelect time.Duration `env:"OPERATOR_SELECT" envDefault:"20s"`
	Prep           time.Duration `env:"PREP" envDefault:"45s"`
	Action         time.Duration `env:"ACTION" envDefault:"3m"`
	RoundEnd       time.Duration `env:"ROUND_END" envDefault:"5s"`
	Bomb           time.Duration `env:"BOMB" envDefault:"45s"`
	Defuse         time.Duration `env:"DEFUSE" envDefault:"7s"`
}

// Catalog is the balance table. It is built once at start-up and must not be
// mutated afterwards; lookups return copies.
type Catalog struct {
	Version     string
	Operators   map[string]Operator
	Weapons     map[string]Weapon
	Multipliers HitMultipliers
	Movement    Movement
	Vision      Vision
	Timings     Timings
}

// NormalizeID folds operator ids so "TRAPMASTER" and "trapmaster" match.
func NormalizeID(id string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(id))
}

func (c *Catalog) Operator(id string) (Operator, bool) {
	op, ok := c.Operators[NormalizeID(id)]
	return op, ok
}

func (c *Catalog) Weapon(id string) (Weapon, bool) {
	w, ok := c.Weapons[id]
	return w, ok
}

// OperatorList returns every operator ordered by team then id.
func (c *Catalog) OperatorList() []Operator {
	out := make([]Operator, 0, len(c.Operators))
	for _, op := range c.Operators {
		out = append(out, op)
	}
	slices.SortFunc(out, func(a, b Operator) int {
		if a.Team != b.Team {
			return strings.Compare(string(a.Team), string(b.Team))
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func (c *Catalog) WeaponList() []Weapon {
	out := make([]Weapon, 0, len(c.Weapons))
	for _, w := range c.Weapons {
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b Weapon) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Multiplier returns the damage multiplier for a hit location. Anything that
// is not "head" or "limb" counts as a body shot.
func (c *Catalog) Multiplier(location string) float64 {
	switch location {
	case "head":
		return c.Multipliers.Head
	case "limb":
		return c.Multipliers.Limb
	default:
		return c.Multipliers.Body
	}
}

// WithTimings returns a copy of the catalog using t.
func (c *Catalog) WithTimings(t Timings) *Catalog {
	cp := *c
	cp.Timings = t
	return &cp
}

func (c *Catalog) Validate() error {
	var err error
	for key, op := range c.Operators {
		if op.ID == "" {
			err = multierr.Append(err, errors.New("operator with empty id"))
		}
		if key != NormalizeID(op.ID) {
			err = multierr.Append(err, fmt.Errorf("operator %q: key does not match id %q", key, op.ID))
		}
		if op.Team != Attackers && op.Team != Defenders {
			err = multierr.Append(err, fmt.Errorf("operator %q: unknown team %q", op.ID, op.Team))
		}
		if op.Health <= 0 {
			err = multierr.Append(err, fmt.Errorf("operator %q: health must be positive", op.ID))
		}
		for _, w := range []string{op.Weapons.Primary, op.Weapons.Secondary} {
			if _, ok := c.Weapons[w]; !ok {
				err = multierr.Append(err, fmt.Errorf("operator %q: unknown weapon %q", op.ID, w))
			}
		}
	}
	for key, w := range c.Weapons {
		if w.ID == "" {
			err = multierr.Append(err, errors.New("weapon with empty id"))
		}
		if key != w.ID {
			err = multierr.Append(err, fmt.Errorf("weapon %q: key does not match id %q", key, w.ID))
		}
		if w.Damage < 0 {
			err = multierr.Append(err, fmt.Errorf("weapon %q: negative damage", key))
		}
	}
	if c.Multipliers.Head <= 0 || c.Multipliers.Body <= 0 || c.Multipliers.Limb <= 0 {
		err = multierr.Append(err, errors.New("hit multipliers must be positive"))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return nil
}

type overrides struct {
	Version     string          `json:"version"`
	Operators   []Operator      `json:"operators"`
	Weapons     []Weapon        `json:"weapons"`
	Multipliers *HitMultipliers `json:"multipliers"`
	Movement    *Movement       `json:"movement"`
	Vision      *Vision         `json:"vision"`
}

// Load builds the default catalog and, when path is non-empty, merges the
// operators, weapons and tables found in the JSON file at path over it.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if err := c.merge(b); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) merge(b []byte) error {
	var o overrides
	if err := json.Unmarshal(b, &o); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	if o.Version != "" {
		c.Version = o.Version
	}
	for _, op := range o.Operators {
		op.ID = NormalizeID(op.ID)
		c.Operators[op.ID] = op
	}
	for _, w := range o.Weapons {
		c.Weapons[w.ID] = w
	}
	if o.Multipliers != nil {
		c.Multipliers = *o.Multipliers
	}
	if o.Movement != nil {
		c.Movement = *o.Movement
	}
	if o.Vision != nil {
		c.Vision = *o.Vision
	}
	return nil
}
