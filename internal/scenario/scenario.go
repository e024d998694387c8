// Package scenario loads grid planning scenarios from TOML or YAML files.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/wastar"
	"github.com/pdrpinto/wastar/internal/grid"
)

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a grid, its sources and goals, planner settings and a list of
// re-planning episodes.
type Scenario struct {
	Width            int
	Height           int
	Walls            []grid.Point
	Sources          []grid.Point
	Goals            []grid.Point
	StoreGoals       bool
	Epsilon          float64
	FanOut           int
	ProgressInterval int
	Episodes         []Episode
}

// Episode changes the environment before the planner is reset and run again.
type Episode struct {
	Name        string
	AddWalls    []grid.Point
	RemoveWalls []grid.Point
	// Sources replaces the scenario sources when non-empty.
	Sources []grid.Point
}

type fileEpisode struct {
	Name        string  `toml:"name" yaml:"name"`
	AddWalls    [][]int `toml:"add_walls" yaml:"add_walls"`
	RemoveWalls [][]int `toml:"remove_walls" yaml:"remove_walls"`
	Sources     [][]int `toml:"sources" yaml:"sources"`
}

type fileConfig struct {
	Width            int           `toml:"width" yaml:"width"`
	Height           int           `toml:"height" yaml:"height"`
	Walls            [][]int       `toml:"walls" yaml:"walls"`
	Sources          [][]int       `toml:"sources" yaml:"sources"`
	Goals            [][]int       `toml:"goals" yaml:"goals"`
	StoreGoals       bool          `toml:"store_goals" yaml:"store_goals"`
	Epsilon          *float64      `toml:"epsilon" yaml:"epsilon"`
	FanOut           *int          `toml:"fan_out" yaml:"fan_out"`
	ProgressInterval *int          `toml:"progress_interval" yaml:"progress_interval"`
	Episodes         []fileEpisode `toml:"episodes" yaml:"episodes"`
}

// Load reads a scenario, choosing the decoder by file extension.
func Load(path string) (Scenario, error) {
	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return Scenario{}, fmt.Errorf("scenario parse failed (%s): %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Scenario{}, fmt.Errorf("scenario load failed (%s): %w", path, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Scenario{}, fmt.Errorf("scenario parse failed (%s): %w", path, err)
		}
	default:
		return Scenario{}, fmt.Errorf("scenario load failed (%s): unsupported extension %q", path, ext)
	}
	sc, err := fromFile(raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

func fromFile(raw fileConfig) (Scenario, error) {
	sc := Scenario{
		Width:            raw.Width,
		Height:           raw.Height,
		StoreGoals:       raw.StoreGoals,
		Epsilon:          wastar.DefaultEpsilon,
		FanOut:           wastar.DefaultFanOut,
		ProgressInterval: wastar.DefaultProgressInterval,
	}
	if raw.Epsilon != nil {
		sc.Epsilon = *raw.Epsilon
	}
	if raw.FanOut != nil {
		sc.FanOut = *raw.FanOut
	}
	if raw.ProgressInterval != nil {
		sc.ProgressInterval = *raw.ProgressInterval
	}

	var err error
	if sc.Walls, err = points("walls", raw.Walls); err != nil {
		return Scenario{}, err
	}
	if sc.Sources, err = points("sources", raw.Sources); err != nil {
		return Scenario{}, err
	}
	if sc.Goals, err = points("goals", raw.Goals); err != nil {
		return Scenario{}, err
	}
	for i, fe := range raw.Episodes {
		ep := Episode{Name: strings.TrimSpace(fe.Name)}
		if ep.Name == "" {
			ep.Name = fmt.Sprintf("episode-%d", i+1)
		}
		if ep.AddWalls, err = points(ep.Name+".add_walls", fe.AddWalls); err != nil {
			return Scenario{}, err
		}
		if ep.RemoveWalls, err = points(ep.Name+".remove_walls", fe.RemoveWalls); err != nil {
			return Scenario{}, err
		}
		if ep.Sources, err = points(ep.Name+".sources", fe.Sources); err != nil {
			return Scenario{}, err
		}
		sc.Episodes = append(sc.Episodes, ep)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func points(field string, raw [][]int) ([]grid.Point, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]grid.Point, 0, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: %s[%d] must be [x, y], got %v", ErrInvalidScenario, field, i, p)
		}
		out = append(out, grid.Point{p[0], p[1]})
	}
	return out, nil
}

// Validate checks dimensions, bounds and planner settings.
func (sc Scenario) Validate() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidScenario, sc.Width, sc.Height)
	}
	if len(sc.Sources) == 0 {
		return fmt.Errorf("%w: no sources", ErrInvalidScenario)
	}
	if len(sc.Goals) == 0 {
		return fmt.Errorf("%w: no goals", ErrInvalidScenario)
	}
	g := grid.Grid{W: sc.Width, H: sc.Height}
	check := func(field string, pts []grid.Point) error {
		for _, p := range pts {
			if !g.In(p) {
				return fmt.Errorf("%w: %s point %v outside %dx%d grid", ErrInvalidScenario, field, p, sc.Width, sc.Height)
			}
		}
		return nil
	}
	if err := check("sources", sc.Sources); err != nil {
		return err
	}
	if err := check("goals", sc.Goals); err != nil {
		return err
	}
	for _, ep := range sc.Episodes {
		if err := check(ep.Name+".sources", ep.Sources); err != nil {
			return err
		}
	}
	if !(sc.Epsilon >= 1) {
		return fmt.Errorf("%w: epsilon %v: %w", ErrInvalidScenario, sc.Epsilon, wastar.ErrInvalidEpsilon)
	}
	if sc.FanOut < 2 {
		return fmt.Errorf("%w: fan_out %d: %w", ErrInvalidScenario, sc.FanOut, wastar.ErrInvalidFanOut)
	}
	return nil
}

// Grid builds the initial grid.
func (sc Scenario) Grid() *grid.Grid {
	g := grid.New(sc.Width, sc.Height)
	for _, w := range sc.Walls {
		g.SetWall(w)
	}
	return g
}

// Problem builds the planning problem for the initial environment.
func (sc Scenario) Problem() *grid.Problem {
	return &grid.Problem{
		Grid:       sc.Grid(),
		Sources:    sc.Sources,
		Goals:      sc.Goals,
		StoreGoals: sc.StoreGoals,
	}
}

// Apply mutates problem's grid and sources for ep.
func (ep Episode) Apply(problem *grid.Problem) {
	for _, w := range ep.AddWalls {
		problem.Grid.SetWall(w)
	}
	for _, w := range ep.RemoveWalls {
		problem.Grid.ClearWall(w)
	}
	if len(ep.Sources) > 0 {
		problem.Sources = ep.Sources
	}
}

// Options converts the planner settings to wastar options.
func (sc Scenario) Options() []wastar.Option {
	return []wastar.Option{
		wastar.WithEpsilon(sc.Epsilon),
		wastar.WithFanOut(sc.FanOut),
		wastar.WithProgressInterval(sc.ProgressInterval),
	}
}
