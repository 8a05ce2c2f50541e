package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Notifier is the fire-and-forget port the appointment use cases call.
type Notifier interface {
	AppointmentRequested(m AppointmentMail)
	AppointmentStatusChanged(m AppointmentMail)
}

type kind int

const (
	kindRequested kind = iota
	kindStatusChanged
)

type job struct {
	kind kind
	mail AppointmentMail
}

// Dispatcher renders and sends appointment emails on a single worker.
// Failures are logged and never reach the caller.
type Dispatcher struct {
	mailer Mailer
	queue  chan job
	wg     sync.WaitGroup

	// mu guards closed; senders hold the read lock
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(mailer Mailer, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan job, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) AppointmentRequested(m AppointmentMail) {
	d.enqueue(job{kind: kindRequested, mail: m})
}

func (d *Dispatcher) AppointmentStatusChanged(m AppointmentMail) {
	d.enqueue(job{kind: kindStatusChanged, mail: m})
}

func (d *Dispatcher) enqueue(j job) {
	if j.mail.To == "" {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Warn().Str("to", j.mail.To).Msg("notification dispatcher closed, dropping email")
		return
	}
	select {
	case d.queue <- j:
	default:
		log.Warn().Str("to", j.mail.To).Msg("notification queue full, dropping email")
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	var (
		msg Message
		err error
	)
	switch j.kind {
	case kindRequested:
		msg, err = RenderRequested(j.mail)
	default:
		msg, err = RenderStatusChanged(j.mail)
	}
	if err == nil {
		err = d.mailer.Send(context.Background(), msg)
	}
	if err != nil {
		log.Error().Err(err).Str("to", j.mail.To).Msg("notification failed")
	}
}

// Close drains pending emails and stops the worker. Later sends are
// dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

var _ Notifier = (*Dispatcher)(nil)
