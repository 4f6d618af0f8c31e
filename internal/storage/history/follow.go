package history

import (
	"log"

	"github.com/propasset/propd/internal/core/events"
)

// Follow drains the event channel into the journal until the channel
// closes. It is meant to run in its own goroutine, fed by a bus
// subscription; a failed append is logged and skipped rather than
// stopping the journal.
func (j *Journal) Follow(ch <-chan events.Event) {
	for ev := range ch {
		if err := j.Record(ev); err != nil {
			log.Printf("journal: dropping %s event: %v", ev.EventType(), err)
		}
	}
}
