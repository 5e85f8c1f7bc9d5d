// Package mail builds notification emails and hands them to a queue for
// asynchronous delivery.
package mail

import "errors"

// Message is the payload placed on the queue.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

var (
	// ErrEmpty is returned by Dequeue when nothing arrived before the poll
	// timeout. Callers simply poll again.
	ErrEmpty = errors.New("mail: queue empty")

	ErrClosed = errors.New("mail: queue closed")
)

func (m Message) validate() error {
	if m.To == "" {
		return errors.New("mail: message has no recipient")
	}
	return nil
}
