// Package roomserver wires the geometry, world, capture, collision, bot and
// netstate packages together into one running room: the fixed-tick
// simulation loop, spawn placement, bot population management and input
// dispatch described by the authoritative rules.
package roomserver

import (
	"log"
	"math/rand"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	uuid "github.com/satori/go.uuid"

	"github.com/territoryarena/server/common/config"
	"github.com/territoryarena/server/common/utils"
	"github.com/territoryarena/server/roomserver/bot"
	"github.com/territoryarena/server/roomserver/capture"
	"github.com/territoryarena/server/roomserver/collision"
	"github.com/territoryarena/server/roomserver/netstate"
	"github.com/territoryarena/server/roomserver/world"
)

const botPopulationInterval = 2 * time.Second

// Room drives one authoritative game instance: one World, its capture and
// collision engines, any bot brains currently populating it, and the
// broadcast projection sent out every tick.
type Room struct {
	cfg *config.Config

	world            *world.World
	captureEngine    *capture.Engine
	collisionEngine  *collision.Engine
	projector        *netstate.Projector
	bots             map[string]*bot.Brain
	rng              *rand.Rand

	inputsMu sync.Mutex
	inputs   map[string]float64

	colorSeq int

	turn utils.Tickturn

	stopticking chan struct{}
	teardowns   []func() error

	observersMu sync.Mutex
	observers   []chan netstate.GameRoomState

	botPopAcc time.Duration
}

// NewRoom creates an empty, not-yet-ticking Room bound to cfg.
func NewRoom(cfg *config.Config) *Room {
	return &Room{
		cfg:             cfg,
		world:           world.New(),
		captureEngine:   capture.New(),
		collisionEngine: collision.New(float64(cfg.CellSize)),
		projector:       netstate.New(),
		bots:            make(map[string]*bot.Brain),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		inputs:          make(map[string]float64),
		stopticking:     make(chan struct{}),
	}
}

// Join places a new human player into the room and returns its assigned id,
// or "" if the room already holds MaxHumansPerRoom human players.
func (r *Room) Join(name string) string {
	humans, _ := r.countPlayers()
	if humans >= r.cfg.MaxHumansPerRoom {
		return ""
	}

	id := uuid.NewV4().String()
	r.spawnPlayer(id, name)
	return id
}

// Leave removes a human player immediately, per the disconnect lifecycle
// rule (bots instead linger for BotRemovalDelay after death).
func (r *Room) Leave(id string) {
	r.world.RemovePlayer(id)

	r.inputsMu.Lock()
	delete(r.inputs, id)
	r.inputsMu.Unlock()
}

// SetInput records a player's desired heading. Multiple calls within the
// same tick coalesce: only the most recent survives to the next
// World.Integrate, per the latest-wins input policy.
func (r *Room) SetInput(id string, targetAngle float64) {
	r.inputsMu.Lock()
	r.inputs[id] = targetAngle
	r.inputsMu.Unlock()
}

// Subscribe returns a channel that receives the projected GameRoomState
// once per tick, for as long as the Room runs.
func (r *Room) Subscribe() <-chan netstate.GameRoomState {
	ch := make(chan netstate.GameRoomState, 1)
	r.observersMu.Lock()
	r.observers = append(r.observers, ch)
	r.observersMu.Unlock()
	return ch
}

// Snapshot returns the current players in the room, in insertion order. It
// is meant for inspection (admin console, tests), not the hot broadcast
// path.
func (r *Room) Snapshot() []*world.Player {
	return r.world.Players()
}

// PlayerCounts returns the number of live human and bot players.
func (r *Room) PlayerCounts() (humans, bots int) {
	return r.countPlayers()
}

// AddTearDownCall registers fn to run when the Room stops.
func (r *Room) AddTearDownCall(fn func() error) {
	r.teardowns = append(r.teardowns, fn)
}

// Run starts the fixed-tick driver and blocks until Stop is called. Run is
// meant to be invoked from its own goroutine by the caller.
func (r *Room) Run() {
	interval := r.cfg.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-r.stopticking:
			utils.Debug("room", "received stop ticking signal")
			r.teardown()
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.doTick(dt)
		}
	}
}

// Stop signals the tick loop to stop between ticks.
func (r *Room) Stop() {
	close(r.stopticking)
}

func (r *Room) teardown() {
	for _, fn := range r.teardowns {
		if err := fn(); err != nil {
			utils.Debug("room", "teardown call failed: "+err.Error())
		}
	}
}

func (r *Room) doTick(dt float64) {
	r.turn = r.turn.Next()

	var faults utils.TickFaults

	r.applyPendingInputs()

	r.world.Integrate(dt)

	for _, brain := range r.bots {
		brain.Tick(dt, r.world)
	}

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				faults.Add("capture", recoverToError(rec))
			}
		}()
		r.captureEngine.Run(r.world)
	}()

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				faults.Add("collision", recoverToError(rec))
			}
		}()
		r.collisionEngine.Run(r.world)
	}()

	r.managePopulation(dt)
	r.reapDeadBots()

	state := r.projector.Project(r.world)
	r.broadcast(state)

	if err := faults.Err(); err != nil {
		log.Println("tick", r.turn, "raised non-fatal faults:", err)
	}
}

func (r *Room) applyPendingInputs() {
	r.inputsMu.Lock()
	pending := r.inputs
	r.inputs = make(map[string]float64)
	r.inputsMu.Unlock()

	for id, angle := range pending {
		r.world.SetInput(id, angle)
	}
}

func (r *Room) broadcast(state netstate.GameRoomState) {
	r.observersMu.Lock()
	defer r.observersMu.Unlock()

	for _, ch := range r.observers {
		select {
		case ch <- state:
		default:
			// Slow subscriber; drop this tick's frame rather than block
			// the simulation.
		}
	}
}

// managePopulation counts humans and bots roughly every two seconds and
// tops up the room with bots to TargetTotalPlayers whenever the human
// count falls below MinHumanPlayersForBots.
func (r *Room) managePopulation(dt float64) {
	r.botPopAcc += time.Duration(dt * float64(time.Second))
	if r.botPopAcc < botPopulationInterval {
		return
	}
	r.botPopAcc = 0

	humans, bots := r.countPlayers()
	if humans >= r.cfg.MinHumanPlayersForBots {
		return
	}

	for humans+bots < r.cfg.TargetTotalPlayers {
		r.spawnBot()
		bots++
	}
}

func (r *Room) countPlayers() (humans, bots int) {
	for _, p := range r.world.Players() {
		if p.IsDead {
			continue
		}
		if world.IsBot(p.ID) {
			bots++
		} else {
			humans++
		}
	}
	return humans, bots
}

func (r *Room) reapDeadBots() {
	for id := range r.bots {
		p := r.world.Get(id)
		if p == nil {
			delete(r.bots, id)
			continue
		}
		if p.IsDead && p.DeathTimer > world.BotRemovalDelay {
			r.world.RemovePlayer(id)
			delete(r.bots, id)
		}
	}
}

func (r *Room) spawnPlayer(id, name string) {
	point := findSpawnPoint(r.world, r.rng, r.cfg.SpawnMaxAttempts)
	color := world.Palette[r.colorSeq%len(world.Palette)]
	r.colorSeq++

	r.world.CreatePlayer(id, name, color, point.X, point.Y)
}

func (r *Room) spawnBot() {
	id := "BOT_" + uuid.NewV4().String()
	name := petname.Generate(2, "-")

	r.spawnPlayer(id, name)
	r.bots[id] = bot.New(id, rand.New(rand.NewSource(r.rng.Int63())), float64(r.cfg.BotDecisionHz))
}

func recoverToError(rec interface{}) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return &panicError{rec}
}

type panicError struct {
	value interface{}
}

func (p *panicError) Error() string {
	return "panic: " + formatPanic(p.value)
}

func formatPanic(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "unknown panic value"
}
