package resources

import (
	"github.com/spaghettifunk/prisma/engine/math"
)

// HitRecord is the result of a ray striking a surface. Position and normal
// are homogeneous and expressed in the space of the stack handed to the
// traversal that produced the record. A record lives for a single pixel's
// computation and is never persisted.
type HitRecord struct {
	// T is the ray parameter at the intersection. Smaller is closer.
	T            float32
	Intersection math.Vec4
	Normal       math.Vec4
	Texcoord     math.Vec2
	Material     Material
	Texture      *TextureImage
}

// Less orders hit records by ray parameter, a total order over any hit set
// produced for a single ray.
func (h HitRecord) Less(other HitRecord) bool {
	return h.T < other.T
}

// ClosestHit returns the record with the minimum t, or false when the list
// is empty.
func ClosestHit(hits []HitRecord) (HitRecord, bool) {
	if len(hits) == 0 {
		return HitRecord{}, false
	}
	closest := hits[0]
	for _, h := range hits[1:] {
		if h.Less(closest) {
			closest = h
		}
	}
	return closest, true
}
