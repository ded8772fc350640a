package tour

import "github.com/pkg/errors"

// ErrNotPermutation indicates an order that is not a permutation of 0..n-1.
var ErrNotPermutation = errors.New("tour: order is not a permutation")
