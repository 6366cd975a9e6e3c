package pipeline

import "io"

type Option[T any] func(p *Pipeline[T]) error

// PipelineDrawer renders the stage graph to dotFileName once the run
// finishes, annotated with stage durations when measuring is enabled.
func PipelineDrawer[T any](dotFileName string) Option[T] {
	return func(p *Pipeline[T]) error {
		p.drawer = newDrawer(dotFileName)
		return nil
	}
}

// PipelineMeasure records per-stage wall-clock durations.
func PipelineMeasure[T any]() Option[T] {
	return func(p *Pipeline[T]) error {
		p.measure = newMeasure()
		return nil
	}
}

// PipelineProgress prints a coloured banner to w when each stage starts,
// finishes or fails.
func PipelineProgress[T any](w io.Writer) Option[T] {
	return func(p *Pipeline[T]) error {
		prog, err := newProgress(w)
		if err != nil {
			return err
		}
		p.progress = prog
		return nil
	}
}
