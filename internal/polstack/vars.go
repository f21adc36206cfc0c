package polstack

var (
	// MonPhisDeg are the azimuths of the default off-axis contrast monitor.
	MonPhisDeg = []Real{45, 135, -45, -135}
	// Compile time checks for text encodings used by config and reports
	_ textCodec = (*ElementType)(nil)
	_ textCodec = (*BasisPolicy)(nil)
)
