package queueservice

import (
	"strings"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
)

// computeInsertPosition decides where a new signup enters the queue,
// implementing "first performance before repeat performance" fairness.
//
// activeQueue is the event's QUEUED entries sorted ascending by position.
// A singer already present in the queue is a repeat and appends at the end.
// A first-time singer is placed directly after the last waiting first-timer,
// ahead of everyone already repeating; with no waiting first-timers they go
// straight to the front.
//
// Name comparison is case-insensitive exact match. Near-duplicate names
// (stray whitespace, nicknames) count as distinct singers — a known
// fairness-accuracy limitation, preserved deliberately because changing it
// changes observable ordering.
func computeInsertPosition(activeQueue []queuedomain.Signup, newSingerName string) int {
	if len(activeQueue) == 0 {
		return 1
	}

	counts := make(map[string]int, len(activeQueue))
	for _, entry := range activeQueue {
		counts[strings.ToLower(entry.SingerName)]++
	}

	if counts[strings.ToLower(newSingerName)] > 0 {
		return maxQueuedPosition(activeQueue) + 1
	}

	lastFirstTimer := 0
	for _, entry := range activeQueue {
		if counts[strings.ToLower(entry.SingerName)] == 1 {
			lastFirstTimer = entry.Position
		}
	}
	return lastFirstTimer + 1
}

// maxQueuedPosition returns the highest position in the queue, 0 when empty.
func maxQueuedPosition(queue []queuedomain.Signup) int {
	max := 0
	for _, entry := range queue {
		if entry.Position > max {
			max = entry.Position
		}
	}
	return max
}
