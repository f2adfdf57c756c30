package ast

// Walk visits t and every spanned node below it in document order of
// declaration. Returning false from fn skips the node's children.
func Walk(t *Tree, fn func(Node) bool) {
	if t == nil || !fn(t) {
		return
	}
	switch {
	case t.Flowchart != nil:
		walkFlow(t.Flowchart, fn)
	case t.Pie != nil:
		walkPie(t.Pie, fn)
	case t.Outline != nil:
		walkOutline(t.Outline, fn)
	}
}

func walkFlow(g *FlowGraph, fn func(Node) bool) {
	if !fn(g) {
		return
	}
	fn(&g.Header)
	for _, n := range g.Nodes {
		fn(n)
	}
	for _, e := range g.Edges {
		if fn(e) {
			fn(&e.Arrow)
		}
	}
	for _, s := range g.Subgraphs {
		walkSubgraph(s, fn)
	}
	for _, s := range g.Stmts {
		fn(s)
	}
}

func walkSubgraph(s *Subgraph, fn func(Node) bool) {
	if !fn(s) {
		return
	}
	for _, child := range s.Subgraphs {
		walkSubgraph(child, fn)
	}
}

func walkPie(p *PieChart, fn func(Node) bool) {
	if !fn(p) {
		return
	}
	fn(&p.Header)
	for _, t := range []*Text{p.Title, p.AccTitle, p.AccDescr} {
		if t != nil {
			fn(t)
		}
	}
	for _, s := range p.Slices {
		fn(s)
	}
}

func walkOutline(o *Outline, fn func(Node) bool) {
	if !fn(o) {
		return
	}
	fn(&o.Header)
	for _, s := range o.Statements {
		fn(s)
	}
}
