package physics

// Kind tags the concrete type behind a Drawable so hosts can switch without reflection
type Kind uint8

const (
	KindVertex Kind = iota
	KindDistance
	KindAnchor
	KindCollision
	KindCollider
)

var kindNames = [...]string{"vertex", "distance", "anchor", "collision", "collider"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Drawable is anything System.Drawables hands to a renderer
type Drawable interface {
	Kind() Kind
}
