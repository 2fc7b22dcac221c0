package math

/**
 * @brief A ray with a homogeneous start point (w=1) and direction (w=0).
 * The direction is deliberately not normalized at creation: shadow rays rely
 * on t=1 landing exactly on the light, and transformed rays keep their t
 * parameterization across spaces only while the direction scales freely.
 */
type Ray struct {
	Start     Vec4
	Direction Vec4
}

func NewRay(start, direction Vec4) Ray {
	start.W = 1.0
	direction.W = 0
	return Ray{Start: start, Direction: direction}
}

// PointAt returns start + t*direction.
func (r Ray) PointAt(t float32) Vec4 {
	p := r.Start.Add(r.Direction.MulScalar(t))
	p.W = 1.0
	return p
}

// Transform returns a copy of the ray mapped by m. The t parameter of any
// intersection is preserved between the original and the transformed ray.
func (r Ray) Transform(m Mat4) Ray {
	return Ray{
		Start:     r.Start.Transform(m),
		Direction: r.Direction.Transform(m),
	}
}
