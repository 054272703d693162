// Package render visualizes the variable-constraint incidence structure
// of a problem as a Graphviz diagram: constraints as boxes, variables as
// ellipses, and an edge for every nonzero coefficient.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/dandxy89/lp-parser-rs/pkg/lp"
)

// Options configures incidence diagram rendering.
type Options struct {
	// Detailed labels edges with coefficients and constraint nodes with
	// their operator and right-hand side. When false, only names are shown.
	Detailed bool
	// IncludeObjectives adds objective nodes and their term edges.
	IncludeObjectives bool
}

// ToDOT converts a problem's incidence structure to Graphviz DOT.
// The resulting DOT string can be rendered with [RenderSVG].
//
// SOS constraints are rendered with dashed outlines to distinguish them
// from standard constraints; their weight edges are dashed as well.
func ToDOT(p *lp.Problem, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph incidence {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12];\n")
	buf.WriteString("\n")

	for _, v := range p.Variables() {
		fmt.Fprintf(&buf, "  %q [shape=ellipse];\n", "v:"+v.Name)
	}
	for _, c := range p.Constraints() {
		label := c.Name
		style := "solid"
		if c.Kind == lp.ConstraintSOS {
			style = "dashed"
			if opts.Detailed {
				label = fmt.Sprintf("%s\n%s", c.Name, c.SOSType)
			}
		} else if opts.Detailed {
			label = fmt.Sprintf("%s\n%s %s", c.Name, c.Op, trimFloat(c.RHS))
		}
		fmt.Fprintf(&buf, "  %q [shape=box, style=%s, label=%q];\n", "c:"+c.Name, style, label)
	}
	if opts.IncludeObjectives {
		for _, o := range p.Objectives() {
			fmt.Fprintf(&buf, "  %q [shape=diamond];\n", "o:"+o.Name)
		}
	}

	buf.WriteString("\n")
	for _, c := range p.Constraints() {
		if c.Kind == lp.ConstraintSOS {
			for _, w := range c.Weights {
				writeEdge(&buf, "c:"+c.Name, "v:"+w.Variable, w.Coefficient, opts.Detailed, true)
			}
			continue
		}
		for _, t := range c.Expr.Terms() {
			writeEdge(&buf, "c:"+c.Name, "v:"+t.Variable, t.Coefficient, opts.Detailed, false)
		}
	}
	if opts.IncludeObjectives {
		for _, o := range p.Objectives() {
			for _, t := range o.Expr.Terms() {
				writeEdge(&buf, "o:"+o.Name, "v:"+t.Variable, t.Coefficient, opts.Detailed, false)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeEdge(buf *bytes.Buffer, from, to string, coeff float64, detailed, dashed bool) {
	attrs := ""
	switch {
	case detailed && dashed:
		attrs = fmt.Sprintf(" [label=%q, style=dashed]", trimFloat(coeff))
	case detailed:
		attrs = fmt.Sprintf(" [label=%q]", trimFloat(coeff))
	case dashed:
		attrs = " [style=dashed]"
	}
	fmt.Fprintf(buf, "  %q -- %q%s;\n", from, to, attrs)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element to a zero-origin
// viewBox with explicit pixel dimensions, which embeds more predictably.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
