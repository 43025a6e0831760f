// Package prompt defines the synchronous input collaborator the
// browser engine uses for line input, single-key choices and yes/no
// confirmations. The terminal UI collects answers ahead of dispatch
// and feeds them through a Queue; tests script a Queue directly.
package prompt

// Prompter answers input requests. The second return value is false
// when the user cancelled, which callers treat as "no action taken".
type Prompter interface {
	// Line asks for a free-form line of text, pre-filled with initial.
	Line(prompt, initial string) (string, bool)

	// Choose asks for one of the given letters and returns the one
	// picked.
	Choose(prompt, letters string) (rune, bool)

	// Confirm asks a yes/no question.
	Confirm(prompt string) (bool, bool)
}

type reply struct {
	line      string
	ch        rune
	yes       bool
	cancelled bool
}

// Queue is a Prompter that replays pre-recorded answers in order. An
// exhausted queue answers every request with a cancel.
type Queue struct {
	replies []reply
}

// NewQueue returns an empty queue.
func NewQueue() *Queue { return &Queue{} }

// PushLine queues an answer for the next Line request.
func (q *Queue) PushLine(s string) *Queue {
	q.replies = append(q.replies, reply{line: s})
	return q
}

// PushChoice queues an answer for the next Choose request.
func (q *Queue) PushChoice(r rune) *Queue {
	q.replies = append(q.replies, reply{ch: r})
	return q
}

// PushConfirm queues an answer for the next Confirm request.
func (q *Queue) PushConfirm(yes bool) *Queue {
	q.replies = append(q.replies, reply{yes: yes})
	return q
}

// PushCancel queues a cancellation for the next request of any type.
func (q *Queue) PushCancel() *Queue {
	q.replies = append(q.replies, reply{cancelled: true})
	return q
}

// Pending reports how many answers are still queued.
func (q *Queue) Pending() int { return len(q.replies) }

func (q *Queue) pop() (reply, bool) {
	if len(q.replies) == 0 {
		return reply{cancelled: true}, false
	}
	r := q.replies[0]
	q.replies = q.replies[1:]
	return r, !r.cancelled
}

func (q *Queue) Line(prompt, initial string) (string, bool) {
	r, ok := q.pop()
	return r.line, ok
}

func (q *Queue) Choose(prompt, letters string) (rune, bool) {
	r, ok := q.pop()
	return r.ch, ok
}

func (q *Queue) Confirm(prompt string) (bool, bool) {
	r, ok := q.pop()
	return r.yes, ok
}
