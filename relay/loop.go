package relay

import (
	"log"
	"time"
)

// Loop drives the relay at a fixed tick rate. Each tick processes the
// inbound queue exactly once, which is what gives every client the same
// total message order.
type Loop struct {
	server   *Server
	tickRate int
	stopChan chan struct{}
}

func NewLoop(server *Server, tickRate int) *Loop {
	return &Loop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (l *Loop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	log.Printf("[relay] loop started at %d ticks/second", l.tickRate)

	for {
		select {
		case <-l.stopChan:
			log.Println("[relay] loop stopped")
			return
		case <-ticker.C:
			l.server.processPending()
		}
	}
}

func (l *Loop) Stop() {
	close(l.stopChan)
}
