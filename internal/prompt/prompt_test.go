package prompt

import "testing"

func TestQueueReplaysInOrder(t *testing.T) {
	q := NewQueue().
		PushLine("first").
		PushChoice('z').
		PushConfirm(true)

	if q.Pending() != 3 {
		t.Fatalf("pending = %d", q.Pending())
	}

	line, ok := q.Line("prompt", "")
	if !ok || line != "first" {
		t.Fatalf("Line = %q/%v", line, ok)
	}

	ch, ok := q.Choose("prompt", "dazecwn")
	if !ok || ch != 'z' {
		t.Fatalf("Choose = %q/%v", ch, ok)
	}

	yes, ok := q.Confirm("prompt")
	if !ok || !yes {
		t.Fatalf("Confirm = %v/%v", yes, ok)
	}

	if q.Pending() != 0 {
		t.Fatalf("pending after drain = %d", q.Pending())
	}
}

func TestQueueExhaustedCancels(t *testing.T) {
	q := NewQueue()
	if _, ok := q.Line("prompt", ""); ok {
		t.Fatalf("empty queue answered a Line request")
	}
	if _, ok := q.Choose("prompt", "ab"); ok {
		t.Fatalf("empty queue answered a Choose request")
	}
	if _, ok := q.Confirm("prompt"); ok {
		t.Fatalf("empty queue answered a Confirm request")
	}
}

func TestQueuePushCancel(t *testing.T) {
	q := NewQueue().PushCancel().PushLine("after")

	if _, ok := q.Line("prompt", ""); ok {
		t.Fatalf("cancel not delivered")
	}
	line, ok := q.Line("prompt", "")
	if !ok || line != "after" {
		t.Fatalf("answer after cancel = %q/%v", line, ok)
	}
}
