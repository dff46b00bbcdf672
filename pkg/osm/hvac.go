package osm

import (
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// hvacPlumbing. object types the demand side of an air loop is traversed through.
var hvacPlumbing = map[string]struct{}{
	strings.ToLower(TypeNode):         struct{}{},
	strings.ToLower(TypeConnection):   struct{}{},
	strings.ToLower(TypePortList):     struct{}{},
	strings.ToLower(TypeZoneSplitter): struct{}{},
	strings.ToLower(TypeZoneMixer):    struct{}{},
	strings.ToLower(TypeSupplyPlenum): struct{}{},
	strings.ToLower(TypeReturnPlenum): struct{}{},
}

func isPlumbing(obj *Object) bool {
	tipe := strings.ToLower(obj.Type)
	if strings.HasPrefix(tipe, strings.ToLower(TypeAirTerminalPrefix)) {
		return true
	}
	_, ok := hvacPlumbing[tipe]
	return ok
}

// referenceGraph. undirected graph over object positions, an edge wherever one object mentions another's handle.
func (m *Model) referenceGraph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	index := make(map[string]int64, len(m.objects))
	for i, obj := range m.objects {
		g.AddNode(simple.Node(i))
		index[NormalizeHandle(obj.Handle())] = int64(i)
	}
	for i, obj := range m.objects {
		for _, ref := range obj.References() {
			j, ok := index[ref]
			if !ok || j == int64(i) {
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
		}
	}
	return g
}

// ZonesServedBy. thermal zones reachable from the air loop through hvac plumbing objects only
// (nodes, connections, port lists, splitters, mixers, plenums, air terminals).
// zones are returned in model order.
func (m *Model) ZonesServedBy(loop AirLoopHVAC) []ThermalZone {
	start := int64(-1)
	for i, obj := range m.objects {
		if obj == loop.obj {
			start = int64(i)
			break
		}
	}
	if start < 0 {
		return []ThermalZone{}
	}

	served := make(map[int64]bool)
	bfs := traverse.BreadthFirst{
		// only the loop itself and plumbing objects are passed through
		Traverse: func(e graph.Edge) bool {
			from := e.From().ID()
			return from == start || isPlumbing(m.objects[from])
		},
		Visit: func(n graph.Node) {
			if strings.EqualFold(m.objects[n.ID()].Type, TypeThermalZone) {
				served[n.ID()] = true
			}
		},
	}
	bfs.Walk(m.referenceGraph(), simple.Node(start), nil)

	zones := make([]ThermalZone, 0, len(served))
	for i, obj := range m.objects {
		if served[int64(i)] {
			zones = append(zones, ThermalZone{obj: obj, model: m})
		}
	}
	return zones
}
