// Package bioinfo merges heterogeneous per-sample analysis outputs into one
// normalized record set.
//
// A Merger owns the ordered list of enrichment stages and threads the shared
// record set through them: fixed values, mapping statistics, software
// versions, variant metrics, pangolin lineage, consensus sequence and the
// variant long-table path. Which fields each stage writes is driven entirely
// by the injected Resolver, so the artifact schema can evolve without code
// changes.
package bioinfo

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/viromics/biometa/pkg/pipeline"
	"github.com/viromics/biometa/pkg/record"
)

// Resolver supplies the externally configured field mappings, keyed by
// topic and subtopic.
type Resolver interface {
	// Fields returns a flat target field -> source locator mapping.
	Fields(topic, subtopic string) (map[string]string, error)
	// NestedFields returns a two-level target field -> (key -> subkey)
	// mapping, used for the software version manifest.
	NestedFields(topic, subtopic string) (map[string]map[string]string, error)
}

const topicAnalysis = "bioinfo_analysis"

// Configuration subtopics, one per stage.
const (
	subRequiredFiles  = "required_file"
	subFixedValues    = "fixed_values"
	subMappingStats   = "mapping_stats"
	subVariantMetrics = "mapping_variant_metrics"
	subVersions       = "mapping_version"
	subPangolin       = "mapping_pangolin"
	subConsensus      = "mapping_consensus"
)

// Keys of the required whole-run artifacts inside the required_file mapping.
const (
	reqMappingStats   = "mapping_stats"
	reqVariantMetrics = "variants_metrics"
	reqVersions       = "versions"
)

// sampleColumn is the column whole-run tables are indexed by.
const sampleColumn = "Sample"

var ErrResolverMustBeSet = errors.New("resolver must be set")

// Merger aggregates analysis outputs for one run.
type Merger struct {
	labMetadata  string
	inputFolder  string
	outputFolder string
	resolver     Resolver
	reqFiles     map[string]string

	progressW   io.Writer
	dotFileName string
}

type Option func(m *Merger)

// WithProgress redirects per-stage progress output, which goes to stderr by
// default.
func WithProgress(w io.Writer) Option {
	return func(m *Merger) {
		m.progressW = w
	}
}

// WithDrawer renders the stage graph to dotFileName after a successful run.
func WithDrawer(dotFileName string) Option {
	return func(m *Merger) {
		m.dotFileName = dotFileName
	}
}

// New validates the run inputs and returns a ready merger. The lab metadata
// file and every required whole-run artifact must exist; their absence is
// fatal before any stage runs.
func New(labMetadata, inputFolder, outputFolder string, resolver Resolver, opts ...Option) (*Merger, error) {
	if resolver == nil {
		return nil, ErrResolverMustBeSet
	}

	_, err := os.Stat(labMetadata)
	if err != nil {
		return nil, errors.Wrapf(err, "lab metadata %s", labMetadata)
	}

	required, err := resolver.Fields(topicAnalysis, subRequiredFiles)
	if err != nil {
		return nil, err
	}

	reqFiles := make(map[string]string, len(required))
	for key, name := range required {
		path := filepath.Join(inputFolder, name)
		_, err = os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "required file %s", name)
		}
		reqFiles[key] = path
	}

	m := &Merger{
		labMetadata:  labMetadata,
		inputFolder:  inputFolder,
		outputFolder: outputFolder,
		resolver:     resolver,
		reqFiles:     reqFiles,
		progressW:    os.Stderr,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Run loads the lab record set, applies every enrichment stage in order and
// serializes the merged result. A fatal stage error aborts the run before
// any output is written.
func (m *Merger) Run(ctx context.Context) error {
	set, err := record.Load(m.labMetadata)
	if err != nil {
		return err
	}

	opts := []pipeline.Option[record.Set]{
		pipeline.PipelineProgress[record.Set](m.progressW),
	}
	if m.dotFileName != "" {
		opts = append(opts,
			pipeline.PipelineDrawer[record.Set](m.dotFileName),
			pipeline.PipelineMeasure[record.Set](),
		)
	}

	pipe, err := pipeline.New(opts...)
	if err != nil {
		return err
	}

	stages := []struct {
		name string
		fn   pipeline.StageFunc[record.Set]
	}{
		{"fixed values", m.addFixedValues},
		{"mapping stats", m.addMappingStats},
		{"software versions", m.addSoftwareVersions},
		{"variant metrics", m.addVariantMetrics},
		{"pangolin lineage", m.addPangolinLineage},
		{"consensus sequence", m.addConsensusSequence},
		{"long table path", m.addLongTablePath},
	}
	for _, st := range stages {
		err = pipe.AddStage(st.name, st.fn)
		if err != nil {
			return err
		}
	}

	err = pipe.Run(ctx, set)
	if err != nil {
		return err
	}

	err = os.MkdirAll(m.outputFolder, 0o755)
	if err != nil {
		return errors.Wrapf(err, "unable to create output folder %s", m.outputFolder)
	}

	return set.Write(filepath.Join(m.outputFolder, outputName(m.labMetadata)))
}

// outputName derives the output file name from the lab metadata file name:
// lab.json becomes bioinfo_lab.json.
func outputName(labMetadata string) string {
	base := filepath.Base(labMetadata)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "bioinfo_" + base + ".json"
}
