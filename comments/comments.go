// Package comments computes thread activity times for rendered comment
// lists: a thread is as fresh as the newest comment anywhere in it.
package comments

import "time"

// Comment is one node in a discussion tree.
type Comment struct {
	ID        int64
	Author    string
	Published time.Time
	Replies   []*Comment
}

// ThreadAge reports the newest publication time within a comment's
// subtree, the comment itself included. The walk uses an explicit work
// stack so adversarially deep reply chains cannot overflow the
// goroutine stack.
func ThreadAge(c *Comment) time.Time {
	if c == nil {
		return time.Time{}
	}
	var newest time.Time
	stack := []*Comment{c}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		if cur.Published.After(newest) {
			newest = cur.Published
		}
		stack = append(stack, cur.Replies...)
	}
	return newest
}

// ThreadAges computes ThreadAge for each top-level comment, in input
// order. Nested replies fold into their ancestors and get no entries of
// their own.
func ThreadAges(top []*Comment) []time.Time {
	ages := make([]time.Time, len(top))
	for i, c := range top {
		ages[i] = ThreadAge(c)
	}
	return ages
}
