package pipeline

import (
	"context"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

// StageFunc is the unit of work of one stage. It mutates data in place.
type StageFunc[T any] func(ctx context.Context, data T) error

type stage[T any] struct {
	name string
	fn   StageFunc[T]
}

// Pipeline is an ordered sequence of stages applied to one shared payload.
type Pipeline[T any] struct {
	stages    []*stage[T]
	graph     graph.Graph[string, string]
	drawer    *drawer
	measure   *measure
	progress  *progress
	startTime time.Time
}

// New creates a new pipeline.
func New[T any](opts ...Option[T]) (*Pipeline[T], error) {
	pipe := &Pipeline[T]{
		graph:     graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles()),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		err := opt(pipe)
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// AddStage appends a stage to the pipeline. Stages run in registration
// order; the stage name must be unique within the pipeline.
func (p *Pipeline[T]) AddStage(name string, stageFn StageFunc[T]) error {
	if name == "" {
		return ErrStageNameMustBeSet
	}
	if stageFn == nil {
		return ErrStageFnMustBeSet
	}

	err := p.graph.AddVertex(name)
	if err != nil {
		return errors.Wrapf(err, "unable to add stage %s", name)
	}

	if count := len(p.stages); count > 0 {
		prev := p.stages[count-1].name
		err = p.graph.AddEdge(prev, name)
		if err != nil {
			return errors.Wrapf(err, "unable to link stage %s to %s", prev, name)
		}
	}

	p.stages = append(p.stages, &stage[T]{name: name, fn: stageFn})

	return nil
}

// Run executes every stage against data and stops at the first stage error.
// The returned error is decorated with the name of the failing stage.
func (p *Pipeline[T]) Run(ctx context.Context, data T) error {
	order, err := graph.StableTopologicalSort(p.graph, func(a, b string) bool { return a < b })
	if err != nil {
		return errors.Wrap(err, "unable to order stages")
	}

	byName := make(map[string]*stage[T], len(p.stages))
	for _, st := range p.stages {
		byName[st.name] = st
	}

	for _, name := range order {
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "stage %s", name)
		default:
		}

		st := byName[name]
		p.progress.running(name)

		start := time.Now()
		err := st.fn(ctx, data)
		if err != nil {
			p.progress.failed(name)
			return errors.Wrap(err, name)
		}
		elapsed := time.Since(start)

		if p.measure != nil {
			p.measure.add(name, elapsed)
		}
		p.progress.finished(name, elapsed)
	}

	return p.finishRun()
}

func (p *Pipeline[T]) finishRun() error {
	if p.measure != nil {
		p.measure.end(time.Since(p.startTime))
	}
	if p.drawer != nil {
		err := p.drawer.draw(p.graph, p.measure)
		if err != nil {
			return errors.Wrap(err, "unable to draw pipeline")
		}
	}

	return nil
}
