package latlon

import "math"

// WGS-84 ellipsoid
const (
	a = 6378137.0
	b = 6356752.314245
	f = 1.0 / 298.257223563
)

// LatLonVincenty solves the direct and inverse geodetic problems on the
// WGS-84 ellipsoid (Vincenty, 1975).
type LatLonVincenty struct{}

func (LatLonVincenty) Destination(from LatLon, bearing float64, distance float64) LatLon {
	φ1 := toRadians(from.Lat)
	λ1 := toRadians(from.Lon)
	α1 := toRadians(bearing)
	s := distance

	sinα1 := math.Sin(α1)
	cosα1 := math.Cos(α1)

	tanU1 := (1 - f) * math.Tan(φ1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	σ1 := math.Atan2(tanU1, cosα1)
	sinα := cosU1 * sinα1
	cos2α := 1 - sinα*sinα
	u2 := cos2α * (a*a - b*b) / (b * b)
	A := 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	B := u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))

	σ := s / (b * A)
	var sinσ, cosσ, cos2σm float64
	for i := 0; i < 100; i++ {
		cos2σm = math.Cos(2*σ1 + σ)
		sinσ = math.Sin(σ)
		cosσ = math.Cos(σ)
		Δσ := B * sinσ * (cos2σm + B/4*(cosσ*(-1+2*cos2σm*cos2σm)-
			B/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*cos2σm*cos2σm)))
		σʹ := σ
		σ = s/(b*A) + Δσ
		if math.Abs(σ-σʹ) < 1e-12 {
			break
		}
	}

	x := sinU1*sinσ - cosU1*cosσ*cosα1
	φ2 := math.Atan2(sinU1*cosσ+cosU1*sinσ*cosα1, (1-f)*math.Sqrt(sinα*sinα+x*x))
	λ := math.Atan2(sinσ*sinα1, cosU1*cosσ-sinU1*sinσ*cosα1)
	C := f / 16 * cos2α * (4 + f*(4-3*cos2α))
	L := λ - (1-C)*f*sinα*(σ+C*sinσ*(cos2σm+C*cosσ*(-1+2*cos2σm*cos2σm)))
	λ2 := λ1 + L

	return LatLon{Lat: toDegrees(φ2), Lon: toDegrees(λ2)}
}

func (v LatLonVincenty) DistanceTo(from, to LatLon) float64 {
	d, _ := v.inverse(from, to)
	return d
}

func (v LatLonVincenty) BearingTo(from, to LatLon) float64 {
	_, b := v.inverse(from, to)
	return b
}

func (LatLonVincenty) inverse(from, to LatLon) (float64, float64) {
	φ1 := toRadians(from.Lat)
	φ2 := toRadians(to.Lat)
	L := toRadians(to.Lon - from.Lon)

	tanU1 := (1 - f) * math.Tan(φ1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	tanU2 := (1 - f) * math.Tan(φ2)
	cosU2 := 1 / math.Sqrt(1+tanU2*tanU2)
	sinU2 := tanU2 * cosU2

	λ := L
	var sinσ, cosσ, σ, sinα, cos2α, cos2σm float64
	for i := 0; i < 100; i++ {
		sinλ := math.Sin(λ)
		cosλ := math.Cos(λ)
		sinσ = math.Sqrt(math.Pow(cosU2*sinλ, 2) + math.Pow(cosU1*sinU2-sinU1*cosU2*cosλ, 2))
		if sinσ == 0 {
			// coincident points
			return 0, 0
		}
		cosσ = sinU1*sinU2 + cosU1*cosU2*cosλ
		σ = math.Atan2(sinσ, cosσ)
		sinα = cosU1 * cosU2 * sinλ / sinσ
		cos2α = 1 - sinα*sinα
		cos2σm = 0
		if cos2α != 0 {
			cos2σm = cosσ - 2*sinU1*sinU2/cos2α
		}
		C := f / 16 * cos2α * (4 + f*(4-3*cos2α))
		λʹ := λ
		λ = L + (1-C)*f*sinα*(σ+C*sinσ*(cos2σm+C*cosσ*(-1+2*cos2σm*cos2σm)))
		if math.Abs(λ-λʹ) < 1e-12 {
			break
		}
	}

	u2 := cos2α * (a*a - b*b) / (b * b)
	A := 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	B := u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))
	Δσ := B * sinσ * (cos2σm + B/4*(cosσ*(-1+2*cos2σm*cos2σm)-
		B/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*cos2σm*cos2σm)))

	d := b * A * (σ - Δσ)

	y := cosU2 * math.Sin(λ)
	x := cosU1*sinU2 - sinU1*cosU2*math.Cos(λ)
	θ := math.Atan2(y, x)

	return d, wrap360(toDegrees(θ))
}
