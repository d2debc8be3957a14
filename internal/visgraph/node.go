package visgraph

import (
	"fmt"
)

// Kind tells start, goal and corner nodes apart
type Kind uint8

const (
	KindStart Kind = iota
	KindGoal
	KindCorner
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindGoal:
		return "goal"
	case KindCorner:
		return "corner"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// NodeID identifies a graph vertex. Obstacle and Corner are only meaningful
// for KindCorner and are zero otherwise, so NodeID values compare with ==.
type NodeID struct {
	Kind     Kind
	Obstacle int
	Corner   int
}

var (
	StartID = NodeID{Kind: KindStart}
	GoalID  = NodeID{Kind: KindGoal}
)

// CornerID names corner index corner of obstacle index obstacle
func CornerID(obstacle, corner int) NodeID {
	return NodeID{Kind: KindCorner, Obstacle: obstacle, Corner: corner}
}

// String is a display name; it is never parsed back
func (id NodeID) String() string {
	if id.Kind == KindCorner {
		return fmt.Sprintf("o%d_c%d", id.Obstacle, id.Corner)
	}
	return id.Kind.String()
}

// Less orders start before goal before corners, corners by obstacle then index
func (id NodeID) Less(other NodeID) bool {
	if id.Kind != other.Kind {
		return id.Kind < other.Kind
	}
	if id.Obstacle != other.Obstacle {
		return id.Obstacle < other.Obstacle
	}
	return id.Corner < other.Corner
}
