package fragment

// Version 2 fragments use the version 1 grammar with the leading digit "2",
// but offsets and disambiguation indices are written in rixits, the base-64
// alphabet of the hashes:
//
//	#1JmqE9nH3Z:121:158  (version 1)
//	#2JmqE9nH3Z:1v:2U    (version 2, same selection)
//
// Ranges are normalised strictly so that neither boundary sits in blank
// text.
func init() {
	DefaultRegistry.Register(&codec{version: 2, numbers: Rixits, normalize: NormalizeStrict})
}
