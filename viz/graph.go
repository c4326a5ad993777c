// ABOUTME: GraphViz generator over the in-memory workspace
// ABOUTME: Shares render plumbing between the pipeline and relationship graphs
package viz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// GraphGenerator renders workspace graphs as DOT. Callers sharing the
// workspace across goroutines must hold its lock.
type GraphGenerator struct {
	ws    *store.Workspace
	money *models.Money
}

func NewGraphGenerator(ws *store.Workspace, money *models.Money) *GraphGenerator {
	if money == nil {
		money = models.USD()
	}
	return &GraphGenerator{ws: ws, money: money}
}

// GraphType names a graph the generator can build.
type GraphType string

const (
	GraphPipeline GraphType = "pipeline"
	GraphComplete GraphType = "all"
)

// Generate dispatches on the graph type.
func (g *GraphGenerator) Generate(kind GraphType) (string, error) {
	switch kind {
	case GraphPipeline:
		return g.GeneratePipelineGraph()
	case GraphComplete:
		return g.GenerateCompleteGraph()
	}
	return "", fmt.Errorf("unknown graph type: %s (valid types: pipeline, all)", kind)
}

// render builds a graph with build and returns its DOT source.
func render(title string, build func(*cgraph.Graph) error) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel(title)
	if err := build(graph); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

// CountGraph reports approximate node and edge counts of DOT source.
func CountGraph(dot string) (nodes, edges int) {
	return strings.Count(dot, "[label="), strings.Count(dot, "->")
}

func nodeName(prefix string, key any) string {
	return strings.ReplaceAll(fmt.Sprintf("%s_%v", prefix, key), " ", "_")
}

func stageColor(stage models.Stage) string {
	switch stage {
	case models.StageClosedWon:
		return "palegreen"
	case models.StageClosedLost:
		return "lightgray"
	case models.StageNegotiation:
		return "gold"
	case models.StageProposal:
		return "lightyellow"
	}
	return "lightblue"
}
