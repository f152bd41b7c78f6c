package layout

import (
	"sort"

	"github.com/flowboard/engine/internal/util"
	"github.com/flowboard/engine/pkg/api"
)

// Fixed spacing constants. Width is analytic in these; height falls out
// of the final node positions
const (
	NodeWidth  = 180.0
	NodeHeight = 72.0
	ColumnGap  = 80.0
	RowGap     = 32.0
	PaddingX   = 48.0
	PaddingY   = 48.0

	rowSpacing = NodeHeight + RowGap
)

// engine holds the working state for a single layout computation. No
// state survives between calls
type engine struct {
	steps      []*api.Step
	index      map[api.StepID]*api.Step
	dependents map[api.StepID][]api.StepID
	column     map[api.StepID]int
	row        map[api.StepID]int
	y          map[api.StepID]float64
	columns    [][]api.StepID
	maxColumn  int
}

// Compute lays out the given step list and returns node geometry, edge
// connectors, and overall canvas size. It never fails: cyclic input and
// dangling references yield a degraded but deterministic layout, and an
// empty list yields a zero-valued result
func Compute(steps []*api.Step) *api.Layout {
	if len(steps) == 0 {
		return &api.Layout{
			Nodes: map[api.StepID]*api.NodeLayout{},
			Edges: []*api.EdgeLayout{},
		}
	}

	e := newEngine(steps)
	e.assignColumns()
	e.orderRows()
	e.placeVertically()
	return e.materialize()
}

func newEngine(steps []*api.Step) *engine {
	e := &engine{
		steps:      steps,
		index:      make(map[api.StepID]*api.Step, len(steps)),
		dependents: map[api.StepID][]api.StepID{},
		column:     make(map[api.StepID]int, len(steps)),
		row:        make(map[api.StepID]int, len(steps)),
		y:          make(map[api.StepID]float64, len(steps)),
	}
	for _, s := range steps {
		if _, ok := e.index[s.ID]; !ok {
			e.index[s.ID] = s
		}
	}
	for _, s := range steps {
		for _, dep := range s.DependsOn {
			if _, ok := e.index[dep]; ok {
				e.dependents[dep] = append(e.dependents[dep], s.ID)
			}
		}
	}
	return e
}

// resolvedDeps returns the step's predecessors that actually exist,
// preserving DependsOn order
func (e *engine) resolvedDeps(s *api.Step) []api.StepID {
	var res []api.StepID
	for _, dep := range s.DependsOn {
		if _, ok := e.index[dep]; ok {
			res = append(res, dep)
		}
	}
	return res
}

// assignColumns performs longest-path layering with a Kahn-style sweep.
// A join node lands strictly after the deepest of its parents. Nodes
// the sweep never reaches (members of a pure cycle) stay at column 0;
// the layout engine degrades instead of rejecting
func (e *engine) assignColumns() {
	inDegree := make(map[api.StepID]int, len(e.steps))
	for _, s := range e.steps {
		inDegree[s.ID] = len(e.resolvedDeps(s))
	}

	var queue []api.StepID
	for _, s := range e.steps {
		if inDegree[s.ID] == 0 {
			queue = append(queue, s.ID)
			e.column[s.ID] = 0
		}
	}

	visited := util.Set[api.StepID]{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited.Contains(id) {
			continue
		}
		visited.Add(id)

		next := e.column[id] + 1
		for _, dep := range e.dependents[id] {
			if next > e.column[dep] {
				e.column[dep] = next
			}
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	for _, s := range e.steps {
		if !visited.Contains(s.ID) {
			e.column[s.ID] = 0
		}
		if e.column[s.ID] > e.maxColumn {
			e.maxColumn = e.column[s.ID]
		}
	}

	e.columns = make([][]api.StepID, e.maxColumn+1)
	for _, s := range e.steps {
		c := e.column[s.ID]
		e.columns[c] = append(e.columns[c], s.ID)
	}
}

// orderRows sorts each column by the barycenter heuristic: the mean row
// index of a node's predecessors within their own columns. A single
// left-to-right pass; ties keep input order, which the stable sort
// guarantees explicitly
func (e *engine) orderRows() {
	for i, id := range e.columns[0] {
		e.row[id] = i
	}

	for c := 1; c <= e.maxColumn; c++ {
		ids := e.columns[c]
		sort.SliceStable(ids, func(i, j int) bool {
			return e.barycenter(ids[i]) < e.barycenter(ids[j])
		})
		for i, id := range ids {
			e.row[id] = i
		}
	}
}

// barycenter returns the mean row index of the step's predecessors, or
// 0 when it has none
func (e *engine) barycenter(id api.StepID) float64 {
	deps := e.resolvedDeps(e.index[id])
	if len(deps) == 0 {
		return 0
	}
	sum := 0.0
	for _, dep := range deps {
		sum += float64(e.row[dep])
	}
	return sum / float64(len(deps))
}

// placeVertically computes y positions in three passes: a forward
// parent-centering pass, a backward successor-centering pass with
// overlap relaxation, and a final forward re-centering pass that
// removes the zig-zag a single sweep leaves on asymmetric shapes. The
// whole canvas is then shifted uniformly so the topmost node sits at
// the top padding; shifting everything at once preserves the exact
// centering relationships the passes established
func (e *engine) placeVertically() {
	for i, id := range e.columns[0] {
		e.y[id] = PaddingY + float64(i)*rowSpacing
	}

	// Pass A: forward parent centering
	for c := 1; c <= e.maxColumn; c++ {
		e.centerOnParents(e.columns[c])
	}

	// Pass B: backward successor centering with overlap relaxation
	for c := e.maxColumn - 1; c >= 0; c-- {
		e.centerOnSuccessors(e.columns[c], c+1)
	}

	// Pass C: forward re-centering against adjusted parents
	for c := 1; c <= e.maxColumn; c++ {
		e.centerOnParents(e.columns[c])
	}

	e.normalize()
}

// centerOnParents places a column as an evenly spaced block whose
// centroid matches the mean of the members' desired centers, where each
// member wants the mean center of its already-placed predecessors.
// Members without placed predecessors default to the top of the canvas
func (e *engine) centerOnParents(ids []api.StepID) {
	if len(ids) == 0 {
		return
	}

	sum := 0.0
	for _, id := range ids {
		sum += e.desiredFromParents(id)
	}
	mean := sum / float64(len(ids))

	half := float64(len(ids)-1) / 2
	for i, id := range ids {
		center := mean + (float64(i)-half)*rowSpacing
		e.y[id] = center - NodeHeight/2
	}
}

func (e *engine) desiredFromParents(id api.StepID) float64 {
	deps := e.resolvedDeps(e.index[id])
	sum, count := 0.0, 0
	for _, dep := range deps {
		if e.column[dep] < e.column[id] {
			sum += e.y[dep] + NodeHeight/2
			count++
		}
	}
	if count == 0 {
		return PaddingY + NodeHeight/2
	}
	return sum / float64(count)
}

// centerOnSuccessors gives every member of a column the mean center of
// its successors in the next column, keeps the forward-pass position
// for members without any, then relaxes the result against the minimum
// spacing floor: a forward sweep pushes later siblings down, a backward
// sweep pulls earlier siblings back up as far as spacing allows
func (e *engine) centerOnSuccessors(ids []api.StepID, next int) {
	if len(ids) == 0 {
		return
	}

	ys := make([]float64, len(ids))
	for i, id := range ids {
		ys[i] = e.y[id]
		sum, count := 0.0, 0
		for _, dep := range e.dependents[id] {
			if e.column[dep] == next {
				sum += e.y[dep] + NodeHeight/2
				count++
			}
		}
		if count > 0 {
			ys[i] = sum/float64(count) - NodeHeight/2
		}
	}

	for i := 1; i < len(ys); i++ {
		if ys[i] < ys[i-1]+rowSpacing {
			ys[i] = ys[i-1] + rowSpacing
		}
	}
	for i := len(ys) - 2; i >= 0; i-- {
		if ys[i] > ys[i+1]-rowSpacing {
			ys[i] = ys[i+1] - rowSpacing
		}
	}

	for i, id := range ids {
		e.y[id] = ys[i]
	}
}

// normalize shifts all nodes uniformly so the topmost sits exactly at
// the top padding
func (e *engine) normalize() {
	minY := e.y[e.columns[0][0]]
	for _, s := range e.steps {
		if y := e.y[s.ID]; y < minY {
			minY = y
		}
	}
	delta := PaddingY - minY
	if delta == 0 {
		return
	}
	for _, s := range e.steps {
		e.y[s.ID] += delta
	}
}

// materialize turns the computed columns, rows, and y positions into
// the final node and edge geometry
func (e *engine) materialize() *api.Layout {
	nodes := make(map[api.StepID]*api.NodeLayout, len(e.steps))
	maxLanes := 0
	maxBottom := 0.0

	for _, ids := range e.columns {
		if len(ids) > maxLanes {
			maxLanes = len(ids)
		}
	}

	for id := range e.index {
		c := e.column[id]
		n := &api.NodeLayout{
			ID:     id,
			X:      PaddingX + float64(c)*(NodeWidth+ColumnGap),
			Y:      e.y[id],
			Width:  NodeWidth,
			Height: NodeHeight,
			Column: c,
			Row:    e.row[id],
		}
		nodes[id] = n
		if bottom := n.Y + n.Height; bottom > maxBottom {
			maxBottom = bottom
		}
	}

	edges := make([]*api.EdgeLayout, 0, len(e.steps))
	for _, s := range e.steps {
		to := nodes[s.ID]
		for _, dep := range s.DependsOn {
			from, ok := nodes[dep]
			if !ok {
				continue
			}
			edges = append(edges, &api.EdgeLayout{
				FromID: dep,
				ToID:   s.ID,
				FromX:  from.X + from.Width,
				FromY:  from.Y + from.Height/2,
				ToX:    to.X,
				ToY:    to.Y + to.Height/2,
			})
		}
	}

	cols := e.maxColumn + 1
	return &api.Layout{
		Nodes:        nodes,
		Edges:        edges,
		Width:        PaddingX*2 + float64(cols)*NodeWidth + float64(e.maxColumn)*ColumnGap,
		Height:       maxBottom + PaddingY,
		Columns:      cols,
		MaxLaneCount: maxLanes,
	}
}
