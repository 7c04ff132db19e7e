// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "errors"

// Errors returned while decoding a portable-format bitmap. Deserialization
// never panics on malformed input; it always returns one of these wrapped
// in more context via fmt.Errorf.
var (
	ErrTruncated   = errors.New("roaring: truncated buffer")
	ErrBadCookie   = errors.New("roaring: unrecognized serial cookie")
	ErrBadKeys     = errors.New("roaring: container keys are not sorted")
	ErrBadRunCount = errors.New("roaring: invalid run count for container")
)
