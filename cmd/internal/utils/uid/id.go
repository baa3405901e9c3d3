package uid

import (
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/gommon/log"
)

var (
	node *snowflake.Node
	once sync.Once
)

func Init(machineID int64) {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			log.Fatalf("failed to initialize snowflake node: %v", err)
		}
	})
}

func Generate() int64 {
	if node == nil {
		log.Fatalf("uid package not initialized")
	}
	return node.Generate().Int64()
}

// NewID returns a fresh record identifier. Snowflake ids are time ordered and
// never handed out twice by the same node, which is all the record tables need.
func NewID() string {
	return strconv.FormatInt(Generate(), 10)
}
