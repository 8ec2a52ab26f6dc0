package message

import (
	"math/rand"
	"strconv"
	"time"
)

// BoundaryTag starts every boundary generated by this package.
const BoundaryTag = "----mimetree-"

// GenerateBoundary returns the multipart boundary for the node with the given
// id in a tree sharing the given base boundary. Ids are unique within a tree,
// so two nodes of the same tree never get the same boundary.
func GenerateBoundary(id int, base string) string {
	return BoundaryTag + strconv.Itoa(id) + "-" + base
}

// newBaseBoundary makes up the base boundary of a tree when none is given: the
// current time in milliseconds followed by a random fraction.
func newBaseBoundary(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) +
		strconv.FormatFloat(rand.Float64(), 'f', -1, 64)
}
