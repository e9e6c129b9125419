package world

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/realm/internal/game/npc"
)

// yamlRegionFile is the top-level YAML structure for region files.
type yamlRegionFile struct {
	Region Recipe `yaml:"region"`
}

// Recipe is the static wiring of one region, executed once at startup.
type Recipe struct {
	ID          string        `yaml:"id"`
	Types       []string      `yaml:"types"`
	Description string        `yaml:"description"`
	Map         *yamlMap      `yaml:"map"`
	Connections []string      `yaml:"connections"`
	Creatures   []string      `yaml:"creatures"`
	Spawners    []yamlSpawner `yaml:"spawners"`
	Zones       []yamlZone    `yaml:"zones"`
	Services    []yamlService `yaml:"services"`
}

// yamlMap is the YAML representation of a spawnable map.
type yamlMap struct {
	Width  int `yaml:"width"`
	Length int `yaml:"length"`
}

// yamlSpawner is the YAML representation of a population pocket.
type yamlSpawner struct {
	X         int      `yaml:"x"`
	Y         int      `yaml:"y"`
	Range     int      `yaml:"range"`
	Limit     int      `yaml:"limit"`
	Creatures []string `yaml:"creatures"`
}

// yamlZone is the YAML representation of a hidden entrance.
type yamlZone struct {
	Parent string `yaml:"parent"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Length int    `yaml:"length"`
}

// yamlService is the YAML representation of a stationary vendor.
type yamlService struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

// LoadRecipeFromFile reads a single region YAML file.
//
// Precondition: path must point to a valid YAML region file.
// Postcondition: Returns a Recipe or a non-nil error.
func LoadRecipeFromFile(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading region file %s: %w", path, err)
	}
	return LoadRecipeFromBytes(data)
}

// LoadRecipeFromBytes parses a region recipe from YAML bytes.
//
// Postcondition: Returns a Recipe whose ID names a single region, or a non-nil error.
func LoadRecipeFromBytes(data []byte) (*Recipe, error) {
	var file yamlRegionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing region YAML: %w", err)
	}
	if _, err := ParseRegion(file.Region.ID); err != nil {
		return nil, fmt.Errorf("validating region: %w", err)
	}
	return &file.Region, nil
}

// LoadRecipesFromDir loads all YAML files in a directory as region recipes.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns all recipes or the first error encountered.
func LoadRecipesFromDir(dir string) ([]*Recipe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading region directory %s: %w", dir, err)
	}

	var recipes []*Recipe
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		recipe, err := LoadRecipeFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading region from %s: %w", name, err)
		}
		recipes = append(recipes, recipe)
	}

	if len(recipes) == 0 {
		return nil, fmt.Errorf("no region files found in %s", dir)
	}

	return recipes, nil
}

// Build constructs the region described by the recipe. Spawners and zones are
// stored in reg.
//
// Precondition: reg must be non-nil when the recipe declares a map.
// Postcondition: Returns a fully wired Region, or an error describing the
// first invalid entry.
func (rc *Recipe) Build(reg *Registry) (*Region, error) {
	id, err := ParseRegion(rc.ID)
	if err != nil {
		return nil, err
	}
	typ, err := ParseRegionType(rc.Types)
	if err != nil {
		return nil, fmt.Errorf("region %s: %w", id, err)
	}

	var r *Region
	switch {
	case rc.Map == nil:
		r, err = NewRegion(typ, id, rc.Description)
	case typ.Has(TypeTown):
		r, err = newSpawnableRegion(typ, id, rc.Description, rc.Map.Width, rc.Map.Length, reg, startAtEntry)
	default:
		r, err = newSpawnableRegion(typ, id, rc.Description, rc.Map.Width, rc.Map.Length, reg, startAtCenter)
	}
	if err != nil {
		return nil, err
	}

	conns, err := ParseRegionList(rc.Connections)
	if err != nil {
		return nil, fmt.Errorf("region %s: connections: %w", id, err)
	}
	r.AddConnection(conns)

	if len(rc.Creatures) > 0 || len(rc.Spawners) > 0 || len(rc.Zones) > 0 {
		if !r.Spawnable() {
			return nil, fmt.Errorf("region %s: creatures, spawners and zones require a map", id)
		}
	}

	defaults, err := ParseCreatures(rc.Creatures)
	if err != nil {
		return nil, fmt.Errorf("region %s: creatures: %w", id, err)
	}
	r.SetDefaultCreatures(defaults)

	for i, ys := range rc.Spawners {
		creatures, err := ParseCreatures(ys.Creatures)
		if err != nil {
			return nil, fmt.Errorf("region %s: spawner %d: %w", id, i, err)
		}
		r.AddSpawner(ys.X, ys.Y, ys.Range, ys.Limit, creatures)
	}

	for i, yz := range rc.Zones {
		parent, err := ParseRegion(yz.Parent)
		if err != nil {
			return nil, fmt.Errorf("region %s: zone %d: %w", id, i, err)
		}
		if _, err := r.AddZone(parent, Point{X: yz.X, Y: yz.Y}, yz.Width, yz.Length); err != nil {
			return nil, fmt.Errorf("zone %d: %w", i, err)
		}
	}

	for _, ysvc := range rc.Services {
		kind, err := npc.ParseServiceType(ysvc.Type)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", id, err)
		}
		vendor, err := npc.NewVendor(kind, ysvc.Name)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", id, err)
		}
		if !r.AddLocalService(vendor) {
			return nil, fmt.Errorf("region %s: duplicate %s service %q", id, kind, ysvc.Name)
		}
	}

	return r, nil
}

// BuildWorld executes every recipe concurrently against reg and assembles the
// resulting regions into a validated Manager.
//
// Postcondition: Returns a Manager whose connections all resolve, or the first
// error encountered. Any error means the world must not be served. The
// registry is insert-only, so on error it may already hold spawners and zones
// from recipes that did build; discard it rather than reusing it.
func BuildWorld(ctx context.Context, recipes []*Recipe, reg *Registry, logger *zap.Logger) (*Manager, error) {
	regions := make([]*Region, len(recipes))

	g, ctx := errgroup.WithContext(ctx)
	for i, rc := range recipes {
		i, rc := i, rc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := rc.Build(reg)
			if err != nil {
				return fmt.Errorf("building region %q: %w", rc.ID, err)
			}
			regions[i] = r
			logger.Debug("region built",
				zap.String("region", r.Name()),
				zap.Stringer("type", r.Type()),
				zap.Stringer("connections", r.Connections()),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i].ID() < regions[j].ID() })
	mgr, err := NewManager(regions)
	if err != nil {
		return nil, fmt.Errorf("creating world manager: %w", err)
	}
	if err := mgr.ValidateConnections(); err != nil {
		return nil, fmt.Errorf("validating world: %w", err)
	}
	return mgr, nil
}
