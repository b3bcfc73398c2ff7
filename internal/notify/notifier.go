// Package notify carries transient, toast-style feedback from the
// service layer to whatever surface is listening. Nothing blocks and
// nothing retries.
package notify

import (
	"time"

	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
)

const (
	KindSuccess = "success"
	KindError   = "error"
)

type Notification struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the structured log. Used by the
// daemon, where no UI is attached.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	logger.Info("Notification", "kind", KindSuccess, "message", message)
}

func (LogNotifier) Error(message string) {
	logger.Warn("Notification", "kind", KindError, "message", message)
}

// ChannelNotifier fans notifications into a buffered channel for a UI
// consumer. When the consumer falls behind, the oldest entry is
// dropped rather than blocking a mutation path.
type ChannelNotifier struct {
	ch  chan Notification
	now func() time.Time
}

func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelNotifier{
		ch:  make(chan Notification, buffer),
		now: time.Now,
	}
}

func (n *ChannelNotifier) Success(message string) {
	n.push(Notification{Kind: KindSuccess, Message: message, CreatedAt: n.now()})
}

func (n *ChannelNotifier) Error(message string) {
	n.push(Notification{Kind: KindError, Message: message, CreatedAt: n.now()})
}

// Notifications is the consumer side of the channel.
func (n *ChannelNotifier) Notifications() <-chan Notification {
	return n.ch
}

func (n *ChannelNotifier) push(notification Notification) {
	for {
		select {
		case n.ch <- notification:
			return
		default:
			select {
			case <-n.ch:
			default:
			}
		}
	}
}
