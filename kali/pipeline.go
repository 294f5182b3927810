package kali

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/kalisim/crossbar"
	"github.com/sarchlab/kalisim/partition"
)

// Handle is the read-only view of the crossbar a pipeline exposes.
type Handle interface {
	Rows() int
	Cols() int
	Latency() uint64
	Energy() uint64
	Stats() crossbar.Stats
	State() [][]uint8
	ReadRef(ref crossbar.BitRef) (uint8, error)
}

// StageCost is the cost accumulated while one stage ran.
type StageCost struct {
	Stage Stage
	Stats crossbar.Stats
}

type pipelineConfig struct {
	scheme Scheme
	rows   int
	cols   int
	name   string
	hooks  []sim.Hook
}

// PipelineOption is a functional option for configuring a Pipeline.
type PipelineOption func(*pipelineConfig)

// WithScheme selects the carry handling scheme.
func WithScheme(s Scheme) PipelineOption {
	return func(c *pipelineConfig) {
		c.scheme = s
	}
}

// WithCrossbarSize fixes the crossbar dimensions instead of using the exact
// requirement. A size too small for the layout is a configuration error.
func WithCrossbarSize(rows, cols int) PipelineOption {
	return func(c *pipelineConfig) {
		c.rows = rows
		c.cols = cols
	}
}

// WithHook attaches a hook to the crossbar. It observes every primitive.
func WithHook(h sim.Hook) PipelineOption {
	return func(c *pipelineConfig) {
		c.hooks = append(c.hooks, h)
	}
}

// WithName names the crossbar.
func WithName(name string) PipelineOption {
	return func(c *pipelineConfig) {
		c.name = name
	}
}

// Pipeline runs one multiplication at a time on its own crossbar.
type Pipeline struct {
	scheme Scheme
	layout Layout
	xb     *crossbar.Crossbar
	pm     *partition.Manager
	alloc  *RowAllocator

	stage  Stage
	mapped bool
	failed error

	a, b         uint64
	aBits, bBits []uint8
	productStart int
	reduced      partition.Set
	bits         []crossbar.BitRef

	mark  crossbar.Stats
	costs []StageCost
}

// NewPipeline builds a pipeline for width-bit operands.
func NewPipeline(width int, opts ...PipelineOption) (*Pipeline, error) {
	cfg := pipelineConfig{scheme: SchemeSumOnly, name: "KALI.Crossbar"}
	for _, opt := range opts {
		opt(&cfg)
	}

	layout, err := NewLayout(width)
	if err != nil {
		return nil, err
	}

	needRows, err := RequiredRows(width, cfg.scheme)
	if err != nil {
		return nil, err
	}
	needCols := RequiredCols(width)

	if cfg.rows == 0 && cfg.cols == 0 {
		cfg.rows, cfg.cols = needRows, needCols
	}
	if cfg.rows < needRows || cfg.cols < needCols {
		return nil, errors.Wrapf(ErrCrossbarTooSmall,
			"%dx%d given, %v %d-bit multiply needs %dx%d",
			cfg.rows, cfg.cols, cfg.scheme, width, needRows, needCols)
	}

	xb, err := crossbar.New(cfg.rows, cfg.cols, crossbar.WithName(cfg.name))
	if err != nil {
		return nil, err
	}
	for _, h := range cfg.hooks {
		xb.AcceptHook(h)
	}

	pm, err := partition.NewManager(layout.NumPartitions())
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		scheme: cfg.scheme,
		layout: layout,
		xb:     xb,
		pm:     pm,
		alloc:  NewRowAllocator(cfg.rows-1, layout.ProductEnd()),
	}, nil
}

// Stage returns the current state.
func (p *Pipeline) Stage() Stage {
	return p.stage
}

// Scheme returns the carry handling scheme.
func (p *Pipeline) Scheme() Scheme {
	return p.scheme
}

// Layout returns the cell layout.
func (p *Pipeline) Layout() Layout {
	return p.layout
}

// Crossbar returns a read-only view of the crossbar.
func (p *Pipeline) Crossbar() Handle {
	return p.xb
}

// Partitions returns a copy of the partitions registered so far.
func (p *Pipeline) Partitions() partition.Set {
	return p.pm.All()
}

// ScratchRowsUsed returns the number of rows handed out by the allocator.
func (p *Pipeline) ScratchRowsUsed() int {
	return p.alloc.Used()
}

// StageCosts returns the cost of every completed stage.
func (p *Pipeline) StageCosts() []StageCost {
	return append([]StageCost{}, p.costs...)
}

func (p *Pipeline) enter(from, to Stage) error {
	if p.failed != nil {
		return errors.WithMessage(p.failed, "pipeline aborted")
	}
	if p.stage != from {
		return errors.Wrapf(ErrStageOrder, "%v requested in state %v", to, p.stage)
	}
	return nil
}

func (p *Pipeline) complete(to Stage) {
	now := p.xb.Stats()
	p.costs = append(p.costs, StageCost{Stage: to, Stats: now.Sub(p.mark)})
	p.mark = now
	p.stage = to
}

func (p *Pipeline) fail(stage Stage, err error) error {
	p.failed = errors.WithMessagef(err, "%v", stage)
	return p.failed
}

// MapInputs writes both operands into the crossbar. It is the only step of
// the INIT state and may run once per multiplication.
func (p *Pipeline) MapInputs(a, b uint64) (aBits, bBits []uint8, err error) {
	if err := p.enter(StageInit, StageInit); err != nil {
		return nil, nil, err
	}
	if p.mapped {
		return nil, nil, errors.Wrap(ErrStageOrder, "inputs already mapped")
	}

	aBits, bBits, err = MapInputs(p.xb, p.layout, a, b)
	if err != nil {
		return nil, nil, p.fail(StageInit, err)
	}

	p.a, p.b = a, b
	p.aBits, p.bBits = aBits, bBits
	p.mapped = true

	return aBits, bBits, nil
}

// GeneratePartialProducts moves INIT to PARTIAL_PRODUCTS and returns the
// first row of the product block.
func (p *Pipeline) GeneratePartialProducts() (int, error) {
	if err := p.enter(StageInit, StagePartialProducts); err != nil {
		return 0, err
	}
	if !p.mapped {
		return 0, errors.Wrap(ErrStageOrder, "inputs not mapped")
	}

	start, err := GeneratePartialProducts(p.xb, p.layout)
	if err != nil {
		return 0, p.fail(StagePartialProducts, err)
	}

	p.productStart = start
	p.complete(StagePartialProducts)

	return start, nil
}

// AssignPartitions moves PARTIAL_PRODUCTS to PARTITIONED.
func (p *Pipeline) AssignPartitions() (partition.Set, error) {
	if err := p.enter(StagePartialProducts, StagePartitioned); err != nil {
		return nil, err
	}

	set, err := AssignPartitions(p.pm, p.layout, p.productStart)
	if err != nil {
		return nil, p.fail(StagePartitioned, err)
	}

	p.complete(StagePartitioned)

	return set, nil
}

// Reduce moves PARTITIONED to REDUCED.
func (p *Pipeline) Reduce() (partition.Set, error) {
	if err := p.enter(StagePartitioned, StageReduced); err != nil {
		return nil, err
	}

	reduce := Reduce
	if p.scheme == SchemeCarrySave {
		reduce = ReduceCarrySave
	}

	set, err := reduce(p.xb, p.alloc, p.pm.All())
	if err != nil {
		return nil, p.fail(StageReduced, err)
	}

	p.reduced = set
	p.complete(StageReduced)

	return set.Clone(), nil
}

// Sum moves REDUCED to SUMMED and returns one bit per weight, indexed by
// partition id.
func (p *Pipeline) Sum() ([]crossbar.BitRef, error) {
	if err := p.enter(StageReduced, StageSummed); err != nil {
		return nil, err
	}

	sum := FinalSum
	if p.scheme == SchemeCarrySave {
		sum = FinalSumRipple
	}

	bits, err := sum(p.xb, p.alloc, p.reduced)
	if err != nil {
		return nil, p.fail(StageSummed, err)
	}

	p.bits = bits
	p.complete(StageSummed)

	return append([]crossbar.BitRef{}, bits...), nil
}

// Result reads the product back from the crossbar. It requires SUMMED.
func (p *Pipeline) Result() (*Result, error) {
	if p.failed != nil {
		return nil, errors.WithMessage(p.failed, "pipeline aborted")
	}
	if p.stage != StageSummed {
		return nil, errors.Wrapf(ErrStageOrder, "result requested in state %v", p.stage)
	}

	r := &Result{
		A:           p.a,
		B:           p.b,
		Width:       p.layout.Width,
		Scheme:      p.scheme,
		ABits:       append([]uint8{}, p.aBits...),
		BBits:       append([]uint8{}, p.bBits...),
		Bits:        append([]crossbar.BitRef{}, p.bits...),
		Values:      make([]uint8, len(p.bits)),
		Stages:      p.StageCosts(),
		ScratchRows: p.alloc.Used(),
		Stats:       p.xb.Stats(),
		Crossbar:    p.xb,
	}

	for w, ref := range p.bits {
		v, err := p.xb.ReadRef(ref)
		if err != nil {
			return nil, err
		}
		r.Values[w] = v
		r.Product |= uint64(v) << uint(w)
	}

	return r, nil
}

// Run performs a whole multiplication from INIT to SUMMED.
func (p *Pipeline) Run(a, b uint64) (*Result, error) {
	if _, _, err := p.MapInputs(a, b); err != nil {
		return nil, err
	}
	if _, err := p.GeneratePartialProducts(); err != nil {
		return nil, err
	}
	if _, err := p.AssignPartitions(); err != nil {
		return nil, err
	}
	if _, err := p.Reduce(); err != nil {
		return nil, err
	}
	if _, err := p.Sum(); err != nil {
		return nil, err
	}
	return p.Result()
}

// Reset clears the crossbar, the partitions and the allocator and returns
// the pipeline to INIT. Hooks stay attached.
func (p *Pipeline) Reset() {
	p.xb.Reset()
	p.pm.Reset()
	p.alloc.Reset()

	p.stage = StageInit
	p.mapped = false
	p.failed = nil
	p.a, p.b = 0, 0
	p.aBits, p.bBits = nil, nil
	p.productStart = 0
	p.reduced = nil
	p.bits = nil
	p.mark = crossbar.Stats{}
	p.costs = nil
}
