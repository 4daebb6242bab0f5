package fragment

// Version 1 fragments:
//
//	fragment   = "1" [ "." ] descriptor { "," descriptor }
//	descriptor = short | long [ "~" tags "~" index "~" index ]
//	short      = hash ":" offset ":" offset
//	long       = hash ":" offset "." hash ":" offset
//	offset     = decimal digits
//
// Element boundaries are moved onto the first or last text node inside the
// element, blank or not.
func init() {
	DefaultRegistry.Register(&codec{version: 1, numbers: Decimal, normalize: NormalizeSimple})
}
