package parallax

import "github.com/mlange-42/ark/ecs"

// Layer is a parallax consumer. Multiplier scales the shared strength and may
// be negative to move against the pointer.
type Layer struct {
	Multiplier float64
}

// Offset is the pixel translation computed for a layer on the last Apply.
type Offset struct {
	X, Y float64
}

// Layers is the fan-out registry: every consumer is an entity carrying a
// Layer and its Offset.
type Layers struct {
	strength float64

	world    *ecs.World
	mapper   *ecs.Map2[Layer, Offset]
	filter   *ecs.Filter2[Layer, Offset]
	offsets  *ecs.Map[Offset]
	entities []ecs.Entity
}

// NewLayers creates a registry with one layer per multiplier. strength is the
// pixel displacement of a multiplier-1 layer at full pointer deflection.
func NewLayers(strength float64, multipliers []float64) *Layers {
	world := ecs.NewWorld()
	l := &Layers{
		strength: strength,
		world:    world,
		mapper:   ecs.NewMap2[Layer, Offset](world),
		filter:   ecs.NewFilter2[Layer, Offset](world),
		offsets:  ecs.NewMap[Offset](world),
	}
	for _, m := range multipliers {
		l.Add(m)
	}
	return l
}

// Add registers a layer and returns its index.
func (l *Layers) Add(multiplier float64) int {
	e := l.mapper.NewEntity(&Layer{Multiplier: multiplier}, &Offset{})
	l.entities = append(l.entities, e)
	return len(l.entities) - 1
}

// Len returns the number of layers.
func (l *Layers) Len() int {
	return len(l.entities)
}

// Strength returns the base pixel strength.
func (l *Layers) Strength() float64 {
	return l.strength
}

// SetStrength changes the base pixel strength.
func (l *Layers) SetStrength(s float64) {
	l.strength = s
}

// Apply writes every layer's offset from the smoothed normalized position.
func (l *Layers) Apply(x, y float64) {
	query := l.filter.Query()
	for query.Next() {
		layer, off := query.Get()
		k := l.strength * layer.Multiplier
		off.X = x * k
		off.Y = y * k
	}
}

// Offset returns the translation of layer i. Unknown indices return zero.
func (l *Layers) Offset(i int) (x, y float64) {
	if i < 0 || i >= len(l.entities) {
		return 0, 0
	}
	off := l.offsets.Get(l.entities[i])
	return off.X, off.Y
}
