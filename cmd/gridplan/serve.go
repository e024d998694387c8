package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/wastar"
	"github.com/pdrpinto/wastar/internal/grid"
	"github.com/pdrpinto/wastar/observe"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a step-by-step JSON view of a search on a random grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger("gridplan-serve")
			if err != nil {
				return err
			}
			gin.SetMode(gin.ReleaseMode)
			registry := prometheus.NewRegistry()
			srv, err := newVizServer(logger, registry, time.Now().UnixNano())
			if err != nil {
				return err
			}
			logger.Info().Str("addr", addr).Msg("serving")
			return srv.router().Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

type snapshot struct {
	Step    int          `json:"step"`
	W       int          `json:"w"`
	H       int          `json:"h"`
	Walls   []grid.Point `json:"walls"`
	Open    []grid.Point `json:"open,omitempty"`
	Closed  []grid.Point `json:"closed,omitempty"`
	Current grid.Point   `json:"current"`
	Start   grid.Point   `json:"start"`
	Goal    grid.Point   `json:"goal"`
	Done    bool         `json:"done"`
	Found   bool         `json:"found"`
	Status  string       `json:"status"`
	Path    []grid.Point `json:"path,omitempty"`
}

type initParams struct {
	W        int     `form:"w"`
	H        int     `form:"h"`
	Clusters int     `form:"clusters"`
	Steps    int     `form:"steps"`
	Density  float64 `form:"density"`
	Epsilon  float64 `form:"epsilon"`
}

// vizServer drives one planner a step at a time for a browser front end.
type vizServer struct {
	mu       sync.Mutex
	logger   zerolog.Logger
	rand     *rand.Rand
	registry *prometheus.Registry
	observer *observe.PromObserver

	problem *grid.Problem
	planner *wastar.Planner[grid.Point, int]
}

func newVizServer(logger zerolog.Logger, registry *prometheus.Registry, seed int64) (*vizServer, error) {
	observer, err := observe.NewPromObserver(registry, "viz")
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return &vizServer{
		logger:   logger,
		rand:     rand.New(rand.NewSource(seed)),
		registry: registry,
		observer: observer,
	}, nil
}

func (s *vizServer) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/init", s.handleInit)
	r.GET("/next", s.handleNext)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	return r
}

func (s *vizServer) handleInit(c *gin.Context) {
	params := initParams{W: 40, H: 24, Clusters: 8, Steps: 200, Density: 0.25, Epsilon: wastar.DefaultEpsilon}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.W <= 4 || params.H <= 4 || params.Clusters < 0 || params.Steps < 0 || params.Density < 0 || params.Density > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid grid parameters"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// random start/goal, kept off the walls
	start, goal := grid.Point{}, grid.Point{}
	for start == goal {
		start = grid.Point{s.rand.Intn(params.W), s.rand.Intn(params.H)}
		goal = grid.Point{s.rand.Intn(params.W), s.rand.Intn(params.H)}
	}
	g := &grid.Grid{
		W:     params.W,
		H:     params.H,
		Walls: grid.GenWalls(s.rand, params.W, params.H, params.Clusters, params.Steps, params.Density, start, goal),
	}
	problem := &grid.Problem{Grid: g, Sources: []grid.Point{start}, Goals: []grid.Point{goal}}

	planner, err := wastar.New[grid.Point, int](
		wastar.WithEpsilon(params.Epsilon),
		wastar.WithLogger(s.logger),
		wastar.WithProgressInterval(1),
		wastar.WithObserver(s.observer),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := planner.Init(problem, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.problem, s.planner = problem, planner
	c.JSON(http.StatusOK, gin.H{"ok": true, "w": params.W, "h": params.H, "walls": len(g.Walls)})
}

func (s *vizServer) handleNext(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.planner == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "engine not initialized"})
		return
	}
	if !s.planner.Snapshot().Done {
		if _, err := s.planner.Step(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	st := s.planner.Snapshot()
	out := snapshot{
		Step:    st.StepIndex,
		W:       s.problem.Grid.W,
		H:       s.problem.Grid.H,
		Walls:   wallList(s.problem.Grid.Walls),
		Open:    st.Open,
		Closed:  st.Closed,
		Current: st.Current,
		Start:   s.problem.Sources[0],
		Goal:    s.problem.Goals[0],
		Done:    st.Done,
		Found:   st.Found,
		Status:  st.Status.String(),
		Path:    st.Path,
	}
	c.JSON(http.StatusOK, out)
}

func wallList(walls map[grid.Point]bool) []grid.Point {
	res := make([]grid.Point, 0, len(walls))
	for p, ok := range walls {
		if ok {
			res = append(res, p)
		}
	}
	return res
}
