package crazyeights

import "sync"

// SpyPlayer is a Player double that records everything sent to it
type SpyPlayer struct {
	PlayerID   string
	PlayerName string

	mu       sync.Mutex
	messages []OutboundMessage
}

// NewSpyPlayer constructs a SpyPlayer
func NewSpyPlayer(id, name string) *SpyPlayer {
	return &SpyPlayer{PlayerID: id, PlayerName: name}
}

func (p *SpyPlayer) ID() string {
	return p.PlayerID
}

func (p *SpyPlayer) Name() string {
	return p.PlayerName
}

func (p *SpyPlayer) Send(msg OutboundMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

// Messages returns a copy of everything sent so far
func (p *SpyPlayer) Messages() []OutboundMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]OutboundMessage, len(p.messages))
	copy(out, p.messages)
	return out
}

// LastMessage returns the most recent message, if any
func (p *SpyPlayer) LastMessage() (OutboundMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.messages) == 0 {
		return OutboundMessage{}, false
	}
	return p.messages[len(p.messages)-1], true
}
