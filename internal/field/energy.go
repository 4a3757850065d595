package field

// EnergyDensity returns e² + b² elementwise, assuming unit permittivity and
// permeability.
func EnergyDensity(e, b *Array3) (*Array3, error) {
	if !e.SameShape(b) {
		return nil, ErrShapeMismatch
	}
	out := NewArray3(e.Ny, e.Nx, e.Nz)
	for i, ev := range e.Data {
		bv := b.Data[i]
		out.Data[i] = ev*ev + bv*bv
	}
	return out, nil
}
