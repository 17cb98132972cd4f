package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewRequestID generates a new globally unique KSUID string, used to tag
// incoming HTTP requests.
func NewRequestID() string {
	return ksuid.New().String()
}

// NewRecordID generates a server-assigned int64 record ID using a snowflake
// node. The node ID comes from the SNOWFLAKE_NODE environment variable and
// defaults to 1 when unset or unparseable.
func NewRecordID() int64 {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = parsed
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			// out-of-range node id from env; node 1 always initializes
			n, _ = snowflake.NewNode(1)
		}
		node = n
	})
	return node.Generate().Int64()
}
