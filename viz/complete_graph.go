// ABOUTME: Complete graph generation combining all entities
// ABOUTME: Links companies, contacts, deals, and tasks through their name references
package viz

import (
	"fmt"

	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/crmpro/models"
)

// GenerateCompleteGraph creates a graph with every contact, company, deal, and task.
// Name references that match no contact or deal are left unlinked.
func (g *GraphGenerator) GenerateCompleteGraph() (string, error) {
	contacts := g.ws.Contacts.All()
	deals := g.ws.Deals.All()
	tasks := g.ws.Tasks.All()

	return render("Complete CRM Graph", func(graph *cgraph.Graph) error {
		companyNodes := make(map[string]*cgraph.Node)
		company := func(name string) (*cgraph.Node, error) {
			if node, ok := companyNodes[name]; ok {
				return node, nil
			}
			node, err := graph.CreateNodeByName(nodeName("company", name))
			if err != nil {
				return nil, fmt.Errorf("failed to create company node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n(Company)", name))
			node.SetShape("box")
			node.SetStyle("filled")
			node.SetFillColor("lightblue")
			companyNodes[name] = node
			return node, nil
		}

		contactNodes := make(map[string]*cgraph.Node)
		for _, c := range contacts {
			node, err := graph.CreateNodeByName(nodeName("contact", c.ID))
			if err != nil {
				return fmt.Errorf("failed to create contact node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%s", c.Name, c.Email))
			node.SetShape("ellipse")
			node.SetStyle("filled")
			node.SetFillColor("lightgreen")
			contactNodes[c.Name] = node

			if c.Company == "" {
				continue
			}
			companyNode, err := company(c.Company)
			if err != nil {
				return err
			}
			edge, err := graph.CreateEdgeByName("works_at", node, companyNode)
			if err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetLabel("works at")
			edge.SetStyle("dashed")
		}

		dealNodes := make(map[string]*cgraph.Node)
		for _, d := range deals {
			node, err := graph.CreateNodeByName(nodeName("deal", d.ID))
			if err != nil {
				return fmt.Errorf("failed to create deal node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%s\n(%s)", d.Name, g.money.Format(d.Value), d.Stage))
			node.SetShape("diamond")
			node.SetStyle("filled")
			node.SetFillColor(stageColor(d.Stage))
			dealNodes[d.Name] = node

			if d.Company != "" {
				companyNode, err := company(d.Company)
				if err != nil {
					return err
				}
				edge, err := graph.CreateEdgeByName("deal_with", companyNode, node)
				if err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetLabel("deal")
			}

			if contactNode, ok := contactNodes[d.Contact]; ok {
				edge, err := graph.CreateEdgeByName("contact_for", contactNode, node)
				if err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetLabel("contact")
				edge.SetStyle("dotted")
			}
		}

		for _, t := range tasks {
			node, err := graph.CreateNodeByName(nodeName("task", t.ID))
			if err != nil {
				return fmt.Errorf("failed to create task node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%s (%s)", t.Title, t.DueDate, t.Status))
			node.SetShape("note")
			if t.Status == models.TaskCompleted {
				node.SetStyle("dashed")
			}

			if deal, ok := dealNodes[models.StringValue(t.RelatedDeal)]; ok {
				if _, err := graph.CreateEdgeByName("task_for", node, deal); err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
			} else if contact, ok := contactNodes[models.StringValue(t.RelatedContact)]; ok {
				if _, err := graph.CreateEdgeByName("task_for", node, contact); err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
			}
		}
		return nil
	})
}
