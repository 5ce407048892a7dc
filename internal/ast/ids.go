package ast

type (
	// NodeID ссылается на узел в Nodes.Arena (1-based).
	NodeID uint32
	// PayloadID ссылается на данные узла в арене его вида.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
