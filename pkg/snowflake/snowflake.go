package snowflake

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// SetNode 按实例编号重建节点, 范围 0-1023
func SetNode(id int64) error {
	n, err := snowflake.NewNode(id)
	if err != nil {
		return fmt.Errorf("snowflake node %d: %w", id, err)
	}
	node = n
	return nil
}

// GenID 全局唯一递增 ID, 所有表主键共用
func GenID() uint64 {
	return uint64(node.Generate().Int64())
}
