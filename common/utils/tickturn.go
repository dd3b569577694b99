package utils

import (
	"strconv"

	uuid "github.com/satori/go.uuid"
)

// Tickturn identifies one simulation tick by sequence number and a random
// id, so log lines and outbound messages referencing a turn can't be
// confused with another room's.
type Tickturn struct {
	seq uint32
	id  uuid.UUID
}

func (t Tickturn) String() string {
	return "<Tickturn(" + strconv.Itoa(int(t.seq)) + ", " + t.id.String() + ")>"
}

// Next returns the following turn.
func (t Tickturn) Next() Tickturn {
	return Tickturn{
		seq: t.seq + 1,
		id:  uuid.NewV4(),
	}
}

// GetSeq returns the turn's sequence number.
func (t Tickturn) GetSeq() uint32 {
	return t.seq
}
