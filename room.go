package crazyeights

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ottoh/crazyeights/deck"
	"github.com/ottoh/crazyeights/protocol"
)

// ComputerName is the display name of the scripted opponent seat
const ComputerName = "Computer"

// RoomOpts are the construction options for a Room
type RoomOpts struct {
	ID           string
	CreatorID    string
	Ruleset      Ruleset
	WithComputer bool
	BotDelay     time.Duration // UX pacing before an automated move fires
	OnClose      func(roomID string)
}

// Room owns one Game and serializes every operation on it through a
// single goroutine, so near-simultaneous plays from different
// connections cannot race the turn pointer.
type Room struct {
	id        string
	creatorID string
	ruleset   Ruleset
	botDelay  time.Duration
	onClose   func(string)

	mu      sync.Mutex // guards roster before the Listen goroutine owns it
	roster  []protocol.PlayerInfo
	started bool

	game     *Game
	conns    Players
	computer *protocol.PlayerInfo

	registerCh   chan Player
	unregisterCh chan string
	inboundCh    chan InboundMessage
	botCh        chan int
	done         chan struct{}
	closeOnce    sync.Once

	// generation fences scheduled computer moves: a move scheduled
	// against a game that has since been restarted or torn down is
	// discarded, not applied.
	generation int
}

// NewRoom constructs a room. Call Listen in its own goroutine to
// start the dispatcher.
func NewRoom(opts RoomOpts) (*Room, error) {
	if opts.ID == "" {
		return nil, fmt.Errorf("room requires an ID")
	}
	r := &Room{
		id:           opts.ID,
		creatorID:    opts.CreatorID,
		ruleset:      opts.Ruleset,
		botDelay:     opts.BotDelay,
		onClose:      opts.OnClose,
		roster:       []protocol.PlayerInfo{},
		conns:        Players{},
		registerCh:   make(chan Player),
		unregisterCh: make(chan string),
		inboundCh:    make(chan InboundMessage),
		botCh:        make(chan int),
		done:         make(chan struct{}),
	}
	if opts.WithComputer {
		r.computer = &protocol.PlayerInfo{
			PlayerID:   "computer-" + NewID(),
			Name:       ComputerName,
			IsComputer: true,
		}
	}
	return r, nil
}

// ID returns the room's id
func (r *Room) ID() string {
	return r.id
}

// CreatorID returns the id of the player who created the room
func (r *Room) CreatorID() string {
	return r.creatorID
}

// AddPendingPlayer records a player who has joined over HTTP but has
// not connected their websocket yet.
func (r *Room) AddPendingPlayer(playerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrGameStarted
	}
	for _, p := range r.roster {
		if p.PlayerID == playerID {
			return ErrDuplicatePlayer
		}
	}
	r.roster = append(r.roster, protocol.PlayerInfo{PlayerID: playerID, Name: name})
	return nil
}

// PendingPlayer returns the roster entry for a player who joined over
// HTTP.
func (r *Room) PendingPlayer(playerID string) (protocol.PlayerInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.roster {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return protocol.PlayerInfo{}, false
}

// PlayerNames returns the display names of everyone in the roster
func (r *Room) PlayerNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := []string{}
	for _, p := range r.roster {
		names = append(names, p.Name)
	}
	return names
}

// Register hands a connected player to the dispatcher
func (r *Room) Register(p Player) {
	select {
	case r.registerCh <- p:
	case <-r.done:
	}
}

// Unregister removes a disconnected player
func (r *Room) Unregister(playerID string) {
	select {
	case r.unregisterCh <- playerID:
	case <-r.done:
	}
}

// Receive forwards an InboundMessage to the dispatcher
func (r *Room) Receive(msg InboundMessage) {
	select {
	case r.inboundCh <- msg:
	case <-r.done:
	}
}

// Close tears the room down. Scheduled computer moves against the old
// game are discarded.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		if r.onClose != nil {
			r.onClose(r.id)
		}
	})
}

// Listen runs the room's dispatch loop until the room closes
func (r *Room) Listen() {
	for {
		select {
		case joiner := <-r.registerCh:
			r.handleJoin(joiner)

		case playerID := <-r.unregisterCh:
			r.handleLeave(playerID)

		case msg := <-r.inboundCh:
			r.handleMessage(msg)

		case gen := <-r.botCh:
			r.handleComputerTurn(gen)

		case <-r.done:
			return
		}
	}
}

func (r *Room) handleJoin(joiner Player) {
	r.conns = AddPlayer(r.conns, joiner)

	for _, p := range r.conns {
		info := protocol.PlayerInfo{PlayerID: joiner.ID(), Name: joiner.Name()}
		p.Send(OutboundMessage{
			PlayerID: p.ID(),
			Command:  protocol.NewJoiner,
			Joiner:   &info,
			Message:  fmt.Sprintf("%s has joined the game!", joiner.Name()),
		})
	}

	// a reconnecting player gets their view straight away
	if r.game != nil {
		if view, err := r.game.StateForPlayer(joiner.ID()); err == nil {
			joiner.Send(OutboundMessage{PlayerID: joiner.ID(), Command: protocol.State, State: &view, Message: view.Message})
		}
	}
}

func (r *Room) handleLeave(playerID string) {
	next := Players{}
	for _, p := range r.conns {
		if p.ID() != playerID {
			next = append(next, p)
		}
	}
	r.conns = next

	r.mu.Lock()
	for i, p := range r.roster {
		if p.PlayerID == playerID {
			r.roster = append(r.roster[:i], r.roster[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	if r.game != nil {
		if err := r.game.RemovePlayer(playerID); err == nil {
			r.broadcastState()
			r.maybeScheduleComputer()
		}
	}

	if len(r.conns) == 0 {
		if r.game != nil && !r.game.GameOver() {
			r.game.EndGame()
		}
		r.Close()
	}
}

func (r *Room) handleMessage(msg InboundMessage) {
	switch msg.Command {
	case protocol.Start, protocol.Restart:
		r.handleStart(msg)

	case protocol.State:
		if r.game == nil {
			r.sendError(msg.PlayerID, fmt.Errorf("game has not started"))
			return
		}
		view, err := r.game.StateForPlayer(msg.PlayerID)
		if err != nil {
			r.sendError(msg.PlayerID, err)
			return
		}
		r.sendTo(msg.PlayerID, OutboundMessage{PlayerID: msg.PlayerID, Command: protocol.State, State: &view, Message: view.Message})

	case protocol.PlayCard:
		r.handlePlay(msg)

	case protocol.DrawCard:
		r.withGame(msg.PlayerID, func() error {
			_, err := r.game.DrawCard(msg.PlayerID)
			return err
		})

	case protocol.PassTurn:
		r.withGame(msg.PlayerID, func() error {
			return r.game.PassTurn(msg.PlayerID)
		})

	default:
		r.sendError(msg.PlayerID, fmt.Errorf("unknown command %s", msg.Command))
	}
}

func (r *Room) handleStart(msg InboundMessage) {
	if msg.PlayerID != r.creatorID {
		r.sendError(msg.PlayerID, fmt.Errorf("only the game's creator can start it"))
		return
	}

	if r.game == nil {
		r.mu.Lock()
		roster := append([]protocol.PlayerInfo{}, r.roster...)
		r.mu.Unlock()
		if r.computer != nil {
			roster = append(roster, *r.computer)
		}
		r.game = NewGame(r.ruleset, roster)
	}

	r.generation++
	if err := r.game.Start(); err != nil {
		r.sendError(msg.PlayerID, err)
		return
	}

	r.mu.Lock()
	r.started = true
	r.mu.Unlock()

	r.broadcastState()
	r.maybeScheduleComputer()
}

func (r *Room) handlePlay(msg InboundMessage) {
	if r.game == nil {
		r.sendError(msg.PlayerID, fmt.Errorf("game has not started"))
		return
	}
	if msg.Card == nil {
		r.sendError(msg.PlayerID, fmt.Errorf("missing card"))
		return
	}
	card, err := msg.Card.Card()
	if err != nil {
		r.sendError(msg.PlayerID, err)
		return
	}

	var chosenSuit *deck.Suit
	if msg.ChosenSuit != "" {
		suit, err := deck.ParseSuit(msg.ChosenSuit)
		if err != nil {
			r.sendError(msg.PlayerID, err)
			return
		}
		chosenSuit = &suit
	}

	r.withGame(msg.PlayerID, func() error {
		return r.game.PlayCard(msg.PlayerID, card, chosenSuit)
	})
}

// withGame applies one engine operation, reports failure to the actor
// and broadcasts the new state on success.
func (r *Room) withGame(playerID string, op func() error) {
	if r.game == nil {
		r.sendError(playerID, fmt.Errorf("game has not started"))
		return
	}
	if err := op(); err != nil {
		r.sendError(playerID, err)
		return
	}
	r.broadcastState()
	r.maybeScheduleComputer()
}

func (r *Room) handleComputerTurn(gen int) {
	// stale moves are discarded rather than applied to a replaced game
	if gen != r.generation || r.game == nil || r.game.GameOver() || r.computer == nil {
		return
	}
	current, ok := r.game.CurrentPlayer()
	if !ok || current.PlayerID != r.computer.PlayerID {
		return
	}

	action := DecideMove(r.game, r.computer.PlayerID)

	var err error
	switch action.Type {
	case ActionPlay:
		err = r.game.PlayCard(r.computer.PlayerID, *action.Card, action.ChosenSuit)
	case ActionDraw:
		_, err = r.game.DrawCard(r.computer.PlayerID)
	case ActionPass:
		err = r.game.PassTurn(r.computer.PlayerID)
	}
	if err != nil {
		log.Printf("room %s: computer move failed: %v", r.id, err)
		return
	}

	r.broadcastState()
	r.maybeScheduleComputer()
}

// maybeScheduleComputer arms a delayed automated move when the
// computer seat holds the turn. The engine never schedules timers
// itself.
func (r *Room) maybeScheduleComputer() {
	if r.computer == nil || r.game == nil || r.game.GameOver() {
		return
	}
	current, ok := r.game.CurrentPlayer()
	if !ok || current.PlayerID != r.computer.PlayerID {
		return
	}

	gen := r.generation
	time.AfterFunc(r.botDelay, func() {
		select {
		case r.botCh <- gen:
		case <-r.done:
		}
	})
}

func (r *Room) broadcastState() {
	cmd := protocol.State
	if r.game.GameOver() {
		cmd = protocol.GameOver
	}
	for _, p := range r.conns {
		view, err := r.game.StateForPlayer(p.ID())
		if err != nil {
			continue
		}
		p.Send(OutboundMessage{PlayerID: p.ID(), Command: cmd, State: &view, Message: view.Message})
	}
}

func (r *Room) sendTo(playerID string, msg OutboundMessage) {
	if p, ok := r.conns.Find(playerID); ok {
		p.Send(msg)
	}
}

func (r *Room) sendError(playerID string, err error) {
	r.sendTo(playerID, OutboundMessage{
		PlayerID: playerID,
		Command:  protocol.Error,
		Error:    err.Error(),
	})
}
