package component

// ArenaBounds is the walled floor rectangle centred on the origin.
type ArenaBounds struct {
	HalfWidth float64
	HalfDepth float64
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()
