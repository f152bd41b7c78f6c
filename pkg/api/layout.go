package api

type (
	// NodeLayout holds the resolved geometry for one step's box
	NodeLayout struct {
		ID     StepID  `json:"id"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		Column int     `json:"column"`
		Row    int     `json:"row"`
	}

	// EdgeLayout holds the straight connector endpoints for one
	// dependency edge: the predecessor's right-center to the dependent's
	// left-center. Routing and curving belong to the renderer
	EdgeLayout struct {
		FromID StepID  `json:"from_id"`
		ToID   StepID  `json:"to_id"`
		FromX  float64 `json:"from_x"`
		FromY  float64 `json:"from_y"`
		ToX    float64 `json:"to_x"`
		ToY    float64 `json:"to_y"`
	}

	// Layout is the full geometry computed for a step list, sized for a
	// scroll viewport
	Layout struct {
		Nodes        map[StepID]*NodeLayout `json:"nodes"`
		Edges        []*EdgeLayout          `json:"edges"`
		Width        float64                `json:"width"`
		Height       float64                `json:"height"`
		Columns      int                    `json:"columns"`
		MaxLaneCount int                    `json:"max_lane_count"`
	}
)

// Center returns the node's box center point
func (n *NodeLayout) Center() (float64, float64) {
	return n.X + n.Width/2, n.Y + n.Height/2
}
