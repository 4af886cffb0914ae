package syncbus

import (
	"context"
	"sync/atomic"
	"time"

	"docengine/document"
)

// KafkaPublisher turns a document.Controller's change stream into a
// sequence of DocOpEvent messages on Kafka, one per published
// ChangeEvent. It is a host in spec.md's sense: it only calls
// Controller.Subscribe and never calls back into the controller from
// its own subscriber, avoiding the reentrant-compose invariant
// violation spec.md §5 describes.
type KafkaPublisher struct {
	dispatcher *KafkaDispatcher
	enqueueTTL time.Duration
}

// NewKafkaPublisher wraps an already-started dispatcher.
func NewKafkaPublisher(d *KafkaDispatcher) *KafkaPublisher {
	return &KafkaPublisher{dispatcher: d, enqueueTTL: 200 * time.Millisecond}
}

// Subscriber returns a document.Subscriber bound to docID and
// authorID, to be passed to Controller.Subscribe. It maintains its own
// monotonically increasing revision counter, incremented once per
// published ChangeEvent — the "host layers OT on top" allowance spec.md
// §1 describes made concrete as a revision stamp on the wire message.
func (p *KafkaPublisher) Subscriber(docID, authorID string) document.Subscriber {
	var revision uint64
	return func(evt document.ChangeEvent) {
		base := atomic.LoadUint64(&revision)
		next := atomic.AddUint64(&revision, 1)
		out := eventFromChange(docID, authorID, next, base, evt, time.Now())

		ctx, cancel := context.WithTimeout(context.Background(), p.enqueueTTL)
		defer cancel()
		_ = p.dispatcher.Enqueue(ctx, out)
	}
}
