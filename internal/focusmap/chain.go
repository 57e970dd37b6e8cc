// Package focusmap renders a country's focus progression as a chain
// graph: every completed focus in order, ending at the one currently
// being worked.
package focusmap

import (
	"fmt"

	"github.com/dominikbraun/graph"

	"sitrep/internal/locale"
	"sitrep/internal/save"
)

// Node is one focus in the chain, carrying everything the renderer
// needs to draw it.
type Node struct {
	ID       string
	Label    string
	Current  bool
	Paused   bool
	Progress float64
}

// Chain is the ordered focus progression for one country. Nodes keeps
// completion order; Graph holds the same focuses as a directed chain.
type Chain struct {
	Tag   string
	Name  string
	Nodes []Node
	Graph graph.Graph[string, string]
}

// BuildChain assembles the focus chain for one country. It fails when
// the country has no focus history at all, since there is nothing to
// draw.
func BuildChain(c *save.Country, loc *locale.Localizer) (*Chain, error) {
	if c.Focus == nil {
		return nil, fmt.Errorf("%s has no focus data", c.Tag)
	}

	chain := &Chain{
		Tag:   c.Tag,
		Name:  loc.CountryName(c.Tag),
		Graph: graph.New(graph.StringHash, graph.Directed()),
	}

	seen := make(map[string]bool)
	for _, id := range c.Focus.Completed {
		if seen[id] {
			continue
		}
		seen[id] = true
		chain.Nodes = append(chain.Nodes, Node{ID: id, Label: loc.FocusName(id)})
	}

	if c.Focus.Current != nil && !seen[*c.Focus.Current] {
		node := Node{
			ID:      *c.Focus.Current,
			Label:   loc.FocusName(*c.Focus.Current),
			Current: true,
			Paused:  c.Focus.Paused != nil && *c.Focus.Paused != "no",
		}
		if c.Focus.Progress != nil {
			node.Progress = *c.Focus.Progress
		}
		chain.Nodes = append(chain.Nodes, node)
	}

	if len(chain.Nodes) == 0 {
		return nil, fmt.Errorf("%s has no focus history", c.Tag)
	}

	for i := range chain.Nodes {
		chain.Graph.AddVertex(chain.Nodes[i].ID) // vertex may already exist
		if i > 0 {
			chain.Graph.AddEdge(chain.Nodes[i-1].ID, chain.Nodes[i].ID)
		}
	}

	return chain, nil
}
