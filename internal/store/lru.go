// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

// node is one entry in a recency list. It carries the id so that evicting
// the tail can also remove the id from the shard map.
type node struct {
	id         string
	prev, next *node
}

// recency orders the ids of one shard from most to least recently used.
// It is not thread-safe; the owning shard's mutex guards it.
type recency struct {
	head, tail *node
	n          int
}

func (l *recency) len() int { return l.n }

// push inserts id as the most recently used entry.
func (l *recency) push(id string) *node {
	nd := &node{id: id, next: l.head}
	if l.head != nil {
		l.head.prev = nd
	} else {
		l.tail = nd
	}
	l.head = nd
	l.n++
	return nd
}

// touch marks nd as the most recently used entry.
func (l *recency) touch(nd *node) {
	if nd == l.head {
		return
	}
	l.unlink(nd)
	nd.next = l.head
	if l.head != nil {
		l.head.prev = nd
	} else {
		l.tail = nd
	}
	l.head = nd
	l.n++
}

// pop removes the least recently used entry and returns its id.
func (l *recency) pop() (string, bool) {
	if l.tail == nil {
		return "", false
	}
	id := l.tail.id
	l.unlink(l.tail)
	return id, true
}

func (l *recency) remove(nd *node) {
	l.unlink(nd)
}

func (l *recency) unlink(nd *node) {
	if nd.prev != nil {
		nd.prev.next = nd.next
	} else {
		l.head = nd.next
	}
	if nd.next != nil {
		nd.next.prev = nd.prev
	} else {
		l.tail = nd.prev
	}
	nd.prev, nd.next = nil, nil
	l.n--
}
