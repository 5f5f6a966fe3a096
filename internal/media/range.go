package media

import (
	"strconv"
	"strings"

	"github.com/skillia/media-gateway/internal/store"
)

// parseRange interprets a Range header against the object size. It accepts a
// single "bytes=<start>-[<end>]" pair; a missing end means "to the end of the
// object".
//
// Anything else falls back to a full-body response rather than 416: other
// units, malformed numbers, multi-range lists, start > end, and an end at or
// past the object size are all treated as if no Range header were sent. 416
// only arises when the bucket itself rejects a range that passed this check.
func parseRange(header string, size int64) *store.ByteRange {
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return nil
	}

	startStr, endStr, ok := strings.Cut(header[len(prefix):], "-")
	if !ok {
		return nil
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return nil
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return nil
		}
	}

	if start > end || end >= size {
		return nil
	}
	return &store.ByteRange{Start: start, End: end}
}
