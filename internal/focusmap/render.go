package focusmap

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	xdraw "golang.org/x/image/draw"

	"sitrep/internal/log"
)

const (
	defaultDPI      = 150.0
	defaultFontSize = 18.0
	labelWrapWidth  = 16
)

// Renderer turns a focus chain into a PNG using the graphviz layout
// engine. The zero value renders at package defaults.
type Renderer struct {
	DPI      float64 // passed to graphviz, default 150
	MaxWidth int     // wider renders are downscaled to this many pixels, 0 keeps natural size
}

// RenderPNG lays the chain out left to right and renders it to PNG
// bytes.
func (r *Renderer) RenderPNG(ctx context.Context, chain *Chain) ([]byte, error) {
	if chain == nil || len(chain.Nodes) == 0 {
		return nil, fmt.Errorf("empty focus chain")
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize graphviz: %w", err)
	}
	defer gv.Close()

	gvGraph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("failed to create graph: %w", err)
	}
	defer gvGraph.Close()

	dpi := r.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}

	gvGraph.SetLayout("dot")
	gvGraph.SetBackgroundColor("black")
	gvGraph.SetDPI(dpi)
	gvGraph.SetSplines("true")
	gvGraph.Set("rankdir", "LR")
	gvGraph.Set("center", "true")
	gvGraph.Set("nodesep", "0.4")
	gvGraph.Set("ranksep", "0.6")

	gvGraph.Attr(int(cgraph.EDGE), "color", "white")
	gvGraph.Attr(int(cgraph.NODE), "style", "filled,rounded")
	gvGraph.Attr(int(cgraph.NODE), "color", "white")
	gvGraph.Attr(int(cgraph.NODE), "fontname", "Arial")

	gvNodes := make(map[string]*graphviz.Node, len(chain.Nodes))
	for _, n := range chain.Nodes {
		gvNode, err := gvGraph.CreateNodeByName("f_" + n.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create node %s: %w", n.ID, err)
		}
		gvNode.SetLabel(nodeLabel(n))
		gvNode.SetFillColor(nodeFill(n))
		gvNode.SetShape("box")
		gvNode.SetFontSize(defaultFontSize)
		gvNode.SetFontColor("black")
		gvNode.SetStyle("filled,rounded")
		gvNodes[n.ID] = gvNode
	}

	adjacency, err := chain.Graph.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to read chain adjacency: %w", err)
	}
	for source, targets := range adjacency {
		sourceNode, ok := gvNodes[source]
		if !ok {
			continue
		}
		for target := range targets {
			targetNode, ok := gvNodes[target]
			if !ok {
				continue
			}
			edge, err := gvGraph.CreateEdgeByName("", sourceNode, targetNode)
			if err != nil {
				continue
			}
			edge.SetPenWidth(1.5)
			edge.SetStyle("solid")
			edge.SetArrowSize(0.8)
			edge.SetDir("forward")
			edge.SetArrowHead("normal")
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, gvGraph, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("graphviz render failed: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("graphviz render produced no PNG output")
	}

	return r.fitWidth(buf.Bytes())
}

// SavePNG renders the chain and writes it under path, creating parent
// directories as needed.
func (r *Renderer) SavePNG(ctx context.Context, chain *Chain, path string) error {
	data, err := r.RenderPNG(ctx, chain)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write focus chain image: %w", err)
	}
	log.Info("focus chain rendered", "tag", chain.Tag, "nodes", len(chain.Nodes), "path", path)
	return nil
}

// fitWidth downscales renders wider than MaxWidth so long chains stay
// viewable in a terminal.
func (r *Renderer) fitWidth(data []byte) ([]byte, error) {
	if r.MaxWidth <= 0 {
		return data, nil
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= r.MaxWidth {
		return data, nil
	}

	scale := float64(r.MaxWidth) / float64(bounds.Dx())
	scaled := image.NewRGBA(image.Rect(0, 0, r.MaxWidth, int(float64(bounds.Dy())*scale)))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode scaled PNG: %w", err)
	}
	return out.Bytes(), nil
}

func nodeLabel(n Node) string {
	label := wrapLabel(n.Label)
	if !n.Current {
		return label
	}
	if n.Paused {
		return label + `\n(paused)`
	}
	return label + fmt.Sprintf(`\n(%.0f%%)`, n.Progress)
}

func nodeFill(n Node) string {
	switch {
	case n.Current && n.Paused:
		return "lightcoral"
	case n.Current:
		return "yellow"
	default:
		return "lightblue"
	}
}

// wrapLabel breaks long focus names at word boundaries so chain boxes
// stay roughly square instead of stretching the row.
func wrapLabel(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return name
	}
	lines := []string{words[0]}
	for _, word := range words[1:] {
		last := lines[len(lines)-1]
		if len(last)+1+len(word) > labelWrapWidth {
			lines = append(lines, word)
			continue
		}
		lines[len(lines)-1] = last + " " + word
	}
	return strings.Join(lines, `\n`)
}
