package notify

import (
	"context"
	"log"
	"time"
)

type emailKind int

const (
	kindConfirmation emailKind = iota
	kindCancellation
)

type queued struct {
	kind  emailKind
	email BookingEmail
}

// Dispatcher delivers booking emails off the request path. Transient send
// failures are retried with a backoff; after maxAttempts the email is
// dropped and logged, never surfaced to the booking flow.
type Dispatcher struct {
	sender      EmailSender
	domain      string
	queue       chan queued
	maxAttempts int
	retryDelay  time.Duration
	sendTimeout time.Duration
}

func NewDispatcher(sender EmailSender, publicDomain string) *Dispatcher {
	d := &Dispatcher{
		sender:      sender,
		domain:      publicDomain,
		queue:       make(chan queued, 256),
		maxAttempts: 3,
		retryDelay:  5 * time.Second,
		sendTimeout: 15 * time.Second,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for item := range d.queue {
		msg, err := d.render(item)
		if err != nil {
			log.Println("notify: template error:", err)
			continue
		}

		for attempt := 1; ; attempt++ {
			ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
			err = d.sender.Send(ctx, msg)
			cancel()

			if err == nil {
				break
			}
			if attempt >= d.maxAttempts {
				log.Printf("notify: giving up on email to %s after %d attempts: %v", msg.To, attempt, err)
				break
			}
			time.Sleep(d.retryDelay)
		}
	}
}

func (d *Dispatcher) render(item queued) (EmailMessage, error) {
	switch item.kind {
	case kindCancellation:
		return renderCancellation(d.domain, item.email)
	default:
		return renderConfirmation(d.domain, item.email)
	}
}

// EnqueueConfirmation never blocks; a full queue drops the email. A nil
// dispatcher is a no-op so use cases stay constructible in tests.
func (d *Dispatcher) EnqueueConfirmation(e BookingEmail) {
	d.enqueue(queued{kind: kindConfirmation, email: e})
}

func (d *Dispatcher) EnqueueCancellation(e BookingEmail) {
	d.enqueue(queued{kind: kindCancellation, email: e})
}

func (d *Dispatcher) enqueue(item queued) {
	if d == nil || item.email.To == "" {
		return
	}

	select {
	case d.queue <- item:
	default:
		log.Println("notify: queue full, dropping email")
	}
}
