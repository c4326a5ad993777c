package viz

import (
	"fmt"

	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/crmpro/models"
)

// GeneratePipelineGraph lays out the stages left to right with each deal hung
// off its stage and linked to its contact.
func (g *GraphGenerator) GeneratePipelineGraph() (string, error) {
	deals := g.ws.Deals.All()
	pipeline := g.ws.Deals.Pipeline()

	return render("Deal Pipeline", func(graph *cgraph.Graph) error {
		graph.SetRankDir(cgraph.LRRank)

		stageNodes := make(map[models.Stage]*cgraph.Node)
		var prev *cgraph.Node
		for _, s := range pipeline.Stages {
			node, err := graph.CreateNodeByName(nodeName("stage", s.Stage))
			if err != nil {
				return fmt.Errorf("failed to create stage node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%d deals\n%s", s.Stage, s.Count, g.money.Format(s.Value)))
			node.SetShape("box")
			node.SetStyle("filled")
			node.SetFillColor(stageColor(s.Stage))
			stageNodes[s.Stage] = node

			if prev != nil {
				edge, err := graph.CreateEdgeByName("next", prev, node)
				if err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetStyle("bold")
			}
			prev = node
		}

		contactNodes := make(map[string]*cgraph.Node)
		for _, d := range deals {
			node, err := graph.CreateNodeByName(nodeName("deal", d.ID))
			if err != nil {
				return fmt.Errorf("failed to create deal node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%s (%d%%)", d.Name, g.money.Format(d.Value), d.Probability))
			node.SetShape("ellipse")

			if stage, ok := stageNodes[d.Stage]; ok {
				if _, err := graph.CreateEdgeByName("in_stage", stage, node); err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
			}

			if d.Contact == "" {
				continue
			}
			contact, ok := contactNodes[d.Contact]
			if !ok {
				contact, err = graph.CreateNodeByName(nodeName("contact", d.Contact))
				if err != nil {
					return fmt.Errorf("failed to create contact node: %w", err)
				}
				contact.SetLabel(d.Contact)
				contact.SetShape("plaintext")
				contactNodes[d.Contact] = contact
			}
			edge, err := graph.CreateEdgeByName("contact_for", contact, node)
			if err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetStyle("dotted")
		}
		return nil
	})
}
