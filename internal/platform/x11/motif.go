package x11

import (
	"fmt"
	"strconv"
	"strings"
)

const motifHintsDecorations = 1 << 1

// motifDecorated decodes a _MOTIF_WM_HINTS value. Only a hint that sets the
// decorations flag with no decorations turns them off.
func motifDecorated(nums []uint) bool {
	if len(nums) < 3 || nums[0]&motifHintsDecorations == 0 {
		return true
	}
	return nums[2] != 0
}

// parseMotifPayload reads the comma separated xprop notation used for hint
// payloads, e.g. "0x2, 0x0, 0x0, 0x0, 0x0".
func parseMotifPayload(payload string) ([]uint, error) {
	fields := strings.Split(payload, ",")
	vals := make([]uint, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid motif hints payload %q: %w", payload, err)
		}
		vals = append(vals, uint(v))
	}
	return vals, nil
}
