package watch

import (
	"context"
	"time"
)

// Debounce groups changes from in into batches. A batch is emitted once no
// further change has arrived for wait; with wait <= 0 every change is its
// own batch. The returned channel is closed when in is closed (after
// flushing a pending batch) or ctx is done.
func Debounce(ctx context.Context, in <-chan Change, wait time.Duration) <-chan []Change {
	out := make(chan []Change, 1)

	go func() {
		defer close(out)

		var (
			pending []Change
			timer   *time.Timer
			fire    <-chan time.Time
		)
		stopTimer := func() {
			if timer != nil {
				timer.Stop()
			}
			fire = nil
		}
		defer stopTimer()

		emit := func() bool {
			batch := pending
			pending = nil
			select {
			case out <- batch:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case change, ok := <-in:
				if !ok {
					if len(pending) > 0 {
						emit()
					}
					return
				}
				pending = append(pending, change)
				if wait <= 0 {
					if !emit() {
						return
					}
					continue
				}
				stopTimer()
				timer = time.NewTimer(wait)
				fire = timer.C

			case <-fire:
				fire = nil
				if !emit() {
					return
				}
			}
		}
	}()

	return out
}
