package domain

const (
	ClientUuidHeader = "X-Client-Key"
)

type messageType byte

const (
	NewGame = messageType(iota)
	SelectMark
	MakeMove
	ResetGame
	SwitchMode
	StateUpdate
	Rejected
)

type Message struct {
	Type    messageType
	Payload any
}

type NewGamePayload struct {
	Variant string
	Mode    Mode
}

type SelectMarkPayload struct {
	Player Player
}

type MovePayload struct {
	Position int
}

type StatePayload struct {
	State      GameState
	Phase      Phase
	ByOpponent bool
}

type RejectedPayload struct {
	Reason string
	Detail string
}

type StatePayloadOption func(p *StatePayload)

func ByOpponent() StatePayloadOption {
	return func(p *StatePayload) {
		p.ByOpponent = true
	}
}

func NewStatePayload(state GameState, phase Phase, opts ...StatePayloadOption) StatePayload {
	p := StatePayload{
		State: state,
		Phase: phase,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
}

func NewRejectedPayload(err error) RejectedPayload {
	return RejectedPayload{
		Reason: RejectionReason(err),
		Detail: err.Error(),
	}
}
