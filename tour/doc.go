// Package tour implements the Hamiltonian cycle representation shared by the
// local search.
//
// A Tour keeps the visiting order plus a position index, so successor and
// predecessor lookups, edge membership and the Between predicate are all O(1).
// Flip reverses the shorter of a segment and its complement, which is the only
// primitive the k-opt search needs to realise sequential moves. Generate
// checks a non-sequential exchange (edges removed and added) for validity and
// builds the resulting order without ever materialising a broken tour.
//
// Hash returns a canonical 64-bit fingerprint: the same cycle hashes equally
// whatever its starting node or direction.
package tour
