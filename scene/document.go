package scene

import (
	"fmt"

	"github.com/achilleasa/spherebvh/bvh"
	"github.com/achilleasa/spherebvh/types"
)

// The on-disk representation of a primitive list.
type Document struct {
	Primitives []PrimitiveEntry `yaml:"primitives"`
}

type PrimitiveEntry struct {
	Position []float32 `yaml:"position,flow"`
	Radius   float32   `yaml:"radius"`
}

// Convert a primitive list to its document form.
func NewDocument(prims []bvh.Primitive) *Document {
	doc := &Document{Primitives: make([]PrimitiveEntry, len(prims))}
	for i, p := range prims {
		doc.Primitives[i] = PrimitiveEntry{
			Position: []float32{p.Position[0], p.Position[1], p.Position[2]},
			Radius:   p.Radius,
		}
	}
	return doc
}

// Convert the document back to a primitive list. Primitive values are not
// validated beyond their shape; the BVH builder rejects invalid radii.
func (d *Document) PrimitiveList() ([]bvh.Primitive, error) {
	prims := make([]bvh.Primitive, len(d.Primitives))
	for i, entry := range d.Primitives {
		if len(entry.Position) != 3 {
			return nil, fmt.Errorf("scene: primitive %d: expected 3 position components; got %d", i, len(entry.Position))
		}
		prims[i] = bvh.Primitive{
			Position: types.XYZ(entry.Position[0], entry.Position[1], entry.Position[2]),
			Radius:   entry.Radius,
		}
	}
	return prims, nil
}
