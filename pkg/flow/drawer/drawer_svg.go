package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-flow/pkg/flow/model"
)

const (
	startVertex = "start"
	endVertex   = "end"
	maxRGB      = 240
)

// SVGDrawer renders the flow chain as a DOT file suitable for graphviz.
// Nodes are labelled with their position and type, edges with the dimension
// flowing between them. When training times are recorded, the vertices are
// coloured on a blue-to-red ramp from fastest to slowest.
type SVGDrawer struct {
	svgFileName string
	nodes       map[int]*model.NodeInfo
	trainTimes  map[int]time.Duration
}

// NewSVGDrawer creates a new SVG drawer writing to the given file.
func NewSVGDrawer(svgFileName string) *SVGDrawer {
	return &SVGDrawer{
		svgFileName: svgFileName,
		nodes:       make(map[int]*model.NodeInfo),
		trainTimes:  make(map[int]time.Duration),
	}
}

// AddNode records a node's position. Re-announcing an index overwrites the
// previous record, so the drawer always reflects the latest arrangement.
func (d *SVGDrawer) AddNode(info *model.NodeInfo) error {
	if info == nil {
		return errors.New("node info must be set")
	}
	d.nodes[info.Index] = info

	return nil
}

// SetTrainTime records the training duration of the node at the given index.
func (d *SVGDrawer) SetTrainTime(index int, elapsed time.Duration) error {
	if _, ok := d.nodes[index]; !ok {
		return errors.Errorf("unknown node index %d", index)
	}
	d.trainTimes[index] = elapsed

	return nil
}

// Draw creates the DOT file with the flow graph.
func (d *SVGDrawer) Draw() error {
	grph, err := d.build()
	if err != nil {
		return err
	}

	file, err := os.Create(d.svgFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.svgFileName)
	}
	defer file.Close()

	err = dot(grph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.svgFileName)
	}

	return nil
}

func (d *SVGDrawer) build() (graph.Graph[string, string], error) {
	grph := graph.New(graph.StringHash, graph.Directed())

	ramp := d.colourRamp()

	if err := grph.AddVertex(startVertex); err != nil {
		return nil, errors.Wrap(err, "unable to add start vertex")
	}
	if err := grph.AddVertex(endVertex); err != nil {
		return nil, errors.Wrap(err, "unable to add end vertex")
	}

	indexes := make([]int, 0, len(d.nodes))
	for idx := range d.nodes {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	prev := startVertex
	prevDim := 0
	for _, idx := range indexes {
		info := d.nodes[idx]
		name := vertexName(info)

		attrs := []func(*graph.VertexProperties){}
		if elapsed, ok := d.trainTimes[idx]; ok {
			attrs = append(attrs, graph.VertexAttribute("xlabel", elapsed.String()))
			if colour, ok := ramp[elapsed]; ok {
				attrs = append(attrs, graph.VertexAttribute("color", colour))
			}
		}
		if err := grph.AddVertex(name, attrs...); err != nil {
			return nil, errors.Wrapf(err, "unable to add vertex %s", name)
		}

		label := dimLabel(prevDim, info.InputDim)
		if err := grph.AddEdge(prev, name, graph.EdgeAttribute("label", label)); err != nil {
			return nil, errors.Wrapf(err, "unable to add edge from %s to %s", prev, name)
		}

		prev = name
		prevDim = info.OutputDim
	}

	if err := grph.AddEdge(prev, endVertex, graph.EdgeAttribute("label", dimLabel(prevDim, 0))); err != nil {
		return nil, errors.Wrapf(err, "unable to add edge from %s to %s", prev, endVertex)
	}

	return grph, nil
}

// colourRamp maps every recorded training time to a hex colour between blue
// (fastest) and red (slowest).
func (d *SVGDrawer) colourRamp() map[time.Duration]string {
	if len(d.trainTimes) == 0 {
		return nil
	}

	sorted := make([]time.Duration, 0, len(d.trainTimes))
	for _, elapsed := range d.trainTimes {
		sorted = append(sorted, elapsed)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	maxValue := sorted[0]
	minValue := sorted[len(sorted)-1]

	ramp := make(map[time.Duration]string, len(sorted))
	for _, curr := range sorted {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(curr-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := -maxRGB*fraction + maxRGB

		rgb, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			continue
		}
		ramp[curr] = rgb.ToHEX().String()
	}

	return ramp
}

func vertexName(info *model.NodeInfo) string {
	return fmt.Sprintf("#%d %s", info.Index, info.Name)
}

func dimLabel(out, in int) string {
	dim := out
	if dim == 0 {
		dim = in
	}
	if dim == 0 {
		return ""
	}

	return strconv.Itoa(dim)
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceWeight     int
	SourceAttributes map[string]string
	EdgeWeight       int
	EdgeAttributes   map[string]string
}

func dot[K comparable, T any](g graph.Graph[K, T], w io.Writer) error {
	desc, err := generateDOT(g)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(w, desc)
}

func generateDOT[K comparable, T any](g graph.Graph[K, T]) (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   make(map[string]string),
		EdgeOperator: "->",
		Statements:   make([]statement, 0),
	}

	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return desc, err
	}

	for vertex, adjacencies := range adjacencyMap {
		_, sourceProperties, err := g.VertexWithProperties(vertex)
		if err != nil {
			return desc, err
		}

		stmt := statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceProperties.Attributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		for adjacency, edge := range adjacencies {
			stmt := statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(w io.Writer, d description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return tpl.Execute(w, d)
}
