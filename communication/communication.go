package communication

import "sync"

// Message is an intention message one car sends to another.
type Message struct {
	From string
	To   string
	Text string
}

// Communicator is an interface that abstracts the communication mechanism.
type Communicator interface {
	Send(msg Message)
	Receive(to string) (Message, bool)
}

// Mailbox keeps the latest message addressed to each car. A new mailbox is
// used for every iteration.
type Mailbox struct {
	messages map[string]Message
	mutex    sync.RWMutex
}

// NewMailbox initializes and returns an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		messages: make(map[string]Message),
	}
}

func (m *Mailbox) Send(msg Message) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.messages[msg.To] = msg
}

func (m *Mailbox) Receive(to string) (Message, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	msg, ok := m.messages[to]
	return msg, ok
}

// Exchange delivers a's message to b and b's message to a.
func Exchange(c Communicator, a, b string, fromA, fromB string) {
	c.Send(Message{From: a, To: b, Text: fromA})
	c.Send(Message{From: b, To: a, Text: fromB})
}
