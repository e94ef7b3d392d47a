package protocol

// PlayerInfo identifies a player to the engine and on the wire
type PlayerInfo struct {
	PlayerID   string `json:"playerID"`
	Name       string `json:"name"`
	IsComputer bool   `json:"isComputer,omitempty"`
}

// Cmd represents a command passing between players and a game room
type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	Start
	HasStarted
	State
	PlayCard
	DrawCard
	PassTurn
	Restart
	Error
	GameOver
)

var CmdNames = map[Cmd]string{
	Null:       "Null",
	NewJoiner:  "NewJoiner",
	Start:      "Start",
	HasStarted: "HasStarted",
	State:      "State",
	PlayCard:   "PlayCard",
	DrawCard:   "DrawCard",
	PassTurn:   "PassTurn",
	Restart:    "Restart",
	Error:      "Error",
	GameOver:   "GameOver",
}

var NameToCmd = map[string]Cmd{
	"Null":       Null,
	"NewJoiner":  NewJoiner,
	"Start":      Start,
	"HasStarted": HasStarted,
	"State":      State,
	"PlayCard":   PlayCard,
	"DrawCard":   DrawCard,
	"PassTurn":   PassTurn,
	"Restart":    Restart,
	"Error":      Error,
	"GameOver":   GameOver,
}

func (c Cmd) String() string {
	return CmdNames[c]
}
