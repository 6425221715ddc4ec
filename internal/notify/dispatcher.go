package notify

import (
	"context"
	"log"
	"time"
)

// Dispatcher entrega eventos em segundo plano. Falha de notificação
// nunca desfaz a operação que a originou: loga e segue.
type Dispatcher struct {
	notifier Notifier
	queue    chan Event
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.notifier.Notify(ctx, ev); err != nil {
			log.Printf("notify error (action=%s appointment=%d): %v", ev.Action, ev.AppointmentID, err)
		}
		cancel()
	}
}

// Dispatch enfileira sem bloquear; fila cheia descarta o evento.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil || d.notifier == nil {
		return
	}
	ev.OccurredAt = time.Now()

	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}
