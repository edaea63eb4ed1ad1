package indexer

import (
	"fmt"

	"github.com/google/uuid"
)

// pointNamespace is fixed so re-ingesting the same document overwrites its
// previous points instead of duplicating them. Chunks that disappear after a
// document shrinks are not cleaned up; their stale points age out only via
// collection recreation.
var pointNamespace = uuid.MustParse("a3f1b2c4-d5e6-7890-abcd-ef1234567890")

// PointID derives a deterministic UUID for a chunk from its source file name
// and position. The same (source, chunkIndex) pair always maps to the same ID.
func PointID(source string, chunkIndex int) string {
	return uuid.NewSHA1(pointNamespace, []byte(fmt.Sprintf("%s::%d", source, chunkIndex))).String()
}
