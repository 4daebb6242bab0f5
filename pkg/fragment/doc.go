// Package fragment encodes text selections as URL fragments and resolves
// fragments back into ranges.
//
// A fragment starts with a version digit and lists one descriptor per range:
//
//	#2JmqE9nH3Z:1v:2U
//	#1JmqE9nH3Z:121.BLkIVltu0:4~sse~0~2
//
// Each boundary names a text node by the hash of its whole text plus an
// offset into it. Because hashes are not unique, a descriptor may carry a
// disambiguation suffix recording where the true start and end nodes sit
// among every node sharing their hashes. Nothing is cached between calls:
// every encode and decode rescans the document it is given.
package fragment
