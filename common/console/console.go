// Package console provides an interactive admin REPL wired directly to an
// in-process Room, for operators running a single room server.
package console

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/territoryarena/server/roomserver"
)

// Session binds the console's commands to one Room.
type Session struct {
	room *roomserver.Room
}

// New builds and configures an ishell console bound to room. Call Run() on
// the returned shell to start the REPL; it blocks until the operator exits.
func New(room *roomserver.Room) *ishell.Shell {
	s := Session{room: room}

	shell := ishell.New()
	shell.Println("territory arena admin console")

	shell.AddCmd(&ishell.Cmd{
		Name: "players",
		Help: "list every player in the room with score and status",
		Func: s.handlePlayers,
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "kick",
		Help: "kick <player id>",
		Func: s.handleKick,
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "stats",
		Help: "print room-wide player counts",
		Func: s.handleStats,
	})

	return shell
}

func (s Session) handlePlayers(c *ishell.Context) {
	players := s.room.Snapshot()
	if len(players) == 0 {
		c.Println("no players")
		return
	}

	for _, p := range players {
		status := "alive"
		switch {
		case p.HasWon:
			status = "won"
		case p.IsDead:
			status = "dead"
		}
		c.Println(fmt.Sprintf("%s\t%s\tscore=%d\t%s", p.ID, p.Name, p.Score, status))
	}
}

func (s Session) handleKick(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("usage: kick <player id>")
		return
	}

	s.room.Leave(c.Args[0])
	c.Println("OK")
}

func (s Session) handleStats(c *ishell.Context) {
	humans, bots := s.room.PlayerCounts()
	c.Println(fmt.Sprintf("humans=%d bots=%d", humans, bots))
}
