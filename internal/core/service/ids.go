package service

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

const categoryIDPrefix = "cat_"

type IDGenerator interface {
	ProductID() string
	CategoryID() string
}

// SnowflakeIDs issues time-ordered ids that never repeat within one node.
// Two processes sharing a node number may collide.
type SnowflakeIDs struct {
	node *snowflake.Node
}

func NewSnowflakeIDs(node int64) (SnowflakeIDs, error) {
	const op = "NewSnowflakeIDs"

	n, err := snowflake.NewNode(node)
	if err != nil {
		return SnowflakeIDs{}, fmt.Errorf("%s: %w", op, err)
	}
	return SnowflakeIDs{n}, nil
}

func (g SnowflakeIDs) ProductID() string {
	return g.node.Generate().String()
}

func (g SnowflakeIDs) CategoryID() string {
	return categoryIDPrefix + g.node.Generate().String()
}
