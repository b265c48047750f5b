package optim

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/experiment"
	"github.com/san-kum/powertrain/internal/logger"
	"github.com/san-kum/powertrain/internal/sim"
)

// ErrNoCandidate is returned when every grid point was rejected.
var ErrNoCandidate = errors.New("optim: no acceptable candidate")

// Score rates a finished run; ok=false discards the point. Lower is better.
type Score func(exp *experiment.Experiment, table *dynamo.Table) (value float64, ok bool)

type Point struct {
	Params map[string]float64
	Value  float64
	OK     bool
	Table  *dynamo.Table
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	Workers    int
	Logger     logger.Logger
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates the full cartesian grid concurrently and returns the best
// accepted point plus every point in grid order.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	score Score,
) (Point, []Point, error) {
	var grid []map[string]float64
	g.enumerate(0, make(map[string]float64), &grid)

	exps := make([]*experiment.Experiment, len(grid))
	jobs := make([]sim.Job, len(grid))
	for i, params := range grid {
		exp, err := buildExperiment(params)
		if err != nil {
			return Point{}, nil, err
		}
		exps[i] = exp
		jobs[i] = exp.Job()
	}

	results, err := sim.Sweep(ctx, jobs, g.Workers, g.Logger)
	if err != nil {
		return Point{}, nil, err
	}

	best := Point{Value: math.Inf(1)}
	points := make([]Point, len(grid))
	for i, r := range results {
		val, ok := score(exps[i], r.Table)
		points[i] = Point{Params: grid[i], Value: val, OK: ok, Table: r.Table}
		if ok && val < best.Value {
			best = points[i]
		}
	}
	if !best.OK {
		return Point{}, points, ErrNoCandidate
	}
	return best, points, nil
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		point := make(map[string]float64, len(current))
		for k, v := range current {
			point[k] = v
		}
		*out = append(*out, point)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		g.enumerate(depth+1, current, out)
	}
	delete(current, paramName)
}

// Ranked returns the accepted points ordered best first.
func Ranked(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.OK {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
