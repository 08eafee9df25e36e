package component

import "github.com/jakecoffman/cp"

// VisualHandle is the host-side object drawn for an entity. Angles are in
// degrees. Release must be called once, when the entity is destroyed.
type VisualHandle interface {
	SetPosition(pos cp.Vector)
	SetAngle(deg float64)
	SetScale(scale float64)
	Release()
}

// Visual attaches a host visual to an entity.
type Visual struct {
	Handle VisualHandle
}

var VisualComponent = NewComponent[Visual]()
