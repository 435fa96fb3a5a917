package webpart

import "sync"

// Notifier delivers the outcome of a list creation pass to the user
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) {
	f(message)
}

// Notifiers fans a message out to each non-nil notifier in order
type Notifiers []Notifier

func (n Notifiers) Notify(message string) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.Notify(message)
		}
	}
}

// Collector keeps every message it is given, used to show them in the response page
type Collector struct {
	sync.Mutex
	messages []string
}

func (c *Collector) Notify(message string) {
	c.Lock()
	defer c.Unlock()
	c.messages = append(c.messages, message)
}

func (c *Collector) Messages() []string {
	c.Lock()
	defer c.Unlock()
	return append([]string(nil), c.messages...)
}
