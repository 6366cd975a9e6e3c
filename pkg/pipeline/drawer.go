package pipeline

import (
	"io"
	"os"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

type drawer struct {
	dotFileName string
}

func newDrawer(dotFileName string) *drawer {
	return &drawer{
		dotFileName: dotFileName,
	}
}

const dotTemplate = `strict digraph {
{{- range $s := .Statements}}
	"{{.Source}}"{{if .Target}} -> "{{.Target}}"{{end}}{{if .Label}} [ xlabel="{{.Label}}" ]{{end}};
{{- end}}
}
`

type statement struct {
	Source string
	Target string
	Label  string
}

type description struct {
	Statements []statement
}

func (d *drawer) draw(g graph.Graph[string, string], msr *measure) error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = dot(g, msr, file)
	if err != nil {
		return errors.Wrapf(err, "unable to render dot file %s", d.dotFileName)
	}

	return nil
}

func dot(g graph.Graph[string, string], msr *measure, w io.Writer) error {
	order, err := graph.StableTopologicalSort(g, func(a, b string) bool { return a < b })
	if err != nil {
		return errors.Wrap(err, "unable to sort stage graph")
	}

	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return errors.Wrap(err, "unable to get adjacency map")
	}

	desc := description{}
	for _, vertex := range order {
		stmt := statement{Source: vertex}
		if msr != nil {
			if elapsed, ok := msr.stages[vertex]; ok {
				stmt.Label = round(elapsed).String()
			}
		}
		desc.Statements = append(desc.Statements, stmt)

		for adjacency := range adjacencyMap[vertex] {
			desc.Statements = append(desc.Statements, statement{
				Source: vertex,
				Target: adjacency,
			})
		}
	}

	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	return tpl.Execute(w, desc)
}
