package entity

import "time"

type Sender uint8

const (
	SenderUnknown Sender = 0
	SenderUser    Sender = 1
	SenderBot     Sender = 2
)

var SenderMap = map[Sender]string{
	SenderUser: "You",
	SenderBot:  "Bot",
}

func (s Sender) String() string {
	return SenderMap[s]
}

func (s Sender) Value() uint8 {
	return uint8(s)
}

// Turn is one message of a conversation. Turns are never edited once appended.
type Turn struct {
	Sender    Sender    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// History is the chronological list of turns owned by a single conversation scope.
type History []Turn

func (h History) Len() int {
	return len(h)
}

// Clone returns a copy that shares no backing array with h.
func (h History) Clone() History {
	if h == nil {
		return History{}
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// With returns a new history with turns appended, leaving h untouched.
func (h History) With(turns ...Turn) History {
	out := make(History, 0, len(h)+len(turns))
	out = append(out, h...)
	return append(out, turns...)
}
