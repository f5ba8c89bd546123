package contactgen

import "github.com/san-kum/rodconstraint/internal/geom"

const segmentEps = 1e-10

// closestPointsSegments finds the closest points between segments P1Q1
// and P2Q2 (the standard two-segment closest-point routine, spec.md
// §4.2). Ties are broken toward the smaller parameter: when the segments
// are parallel (denom == 0), s is taken as 0 before t is computed and
// clamped.
func closestPointsSegments(p1, q1, p2, q2 geom.Vec3) (c1, c2 geom.Vec3, s, t float64) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)

	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	if a <= segmentEps && e <= segmentEps {
		return p1, p2, 0, 0
	}

	if a <= segmentEps {
		s = 0
		t = clamp01(f / e)
	} else {
		c := d1.Dot(r)
		if e <= segmentEps {
			t = 0
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clamp01((b*f - c*e) / denom)
			} else {
				s = 0
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}

	c1 = p1.Add(d1.Scale(s))
	c2 = p2.Add(d2.Scale(t))
	return c1, c2, s, t
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
