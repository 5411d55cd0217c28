// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// ErrInvalidNumber marks a numeric-text token outside the resolver's
// lexicons (malformed comma grouping, unknown spelled component).
// Callers recover by dropping the candidate; it never reaches the API.
var ErrInvalidNumber = errors.New("invalid number")

// ErrInvalidQuery marks an empty or missing query term list.
var ErrInvalidQuery = errors.New("invalid query: empty term list")

// ErrRangeBounds marks an unusable [min, max] filter: min > max, or a
// fraction-shaped bound that cannot be parsed.
var ErrRangeBounds = errors.New("invalid range bounds")
