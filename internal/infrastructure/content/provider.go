// Package content supplies the bot's canned texts: motivational quotes
// and daily puzzle prompts.
package content

import (
	"math/rand"
	"sync"
	"time"
)

// Provider hands out random quotes and puzzles. Safe for concurrent use.
type Provider struct {
	mu      sync.Mutex
	rng     *rand.Rand
	quotes  []string
	puzzles []string
}

// NewProvider creates a provider with the built-in catalog.
func NewProvider() *Provider {
	return &Provider{
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		quotes:  defaultQuotes,
		puzzles: defaultPuzzles,
	}
}

// Quote returns a random motivational quote.
func (p *Provider) Quote() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.quotes[p.rng.Intn(len(p.quotes))]
}

// Puzzle returns a random daily puzzle prompt.
func (p *Provider) Puzzle() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.puzzles[p.rng.Intn(len(p.puzzles))]
}

var defaultQuotes = []string{
	"Every solved problem is a rep for your brain. 💪",
	"Consistency beats intensity. One problem a day keeps the rust away.",
	"The best time to start your streak was yesterday. The second best is now.",
	"You don't have to be great to start, but you have to start to be great.",
	"Debugging is twice as hard as writing the code. Write simply, solve daily.",
	"Small commits, big wins. Keep grinding! 🚀",
	"A streak is just a promise you keep to yourself.",
	"Code a little every day and one day you'll look back amazed.",
}

var defaultPuzzles = []string{
	"Reverse a linked list without extra memory. Post your solution as a code block!",
	"Given an array of integers, find the longest strictly increasing subsequence.",
	"Implement an LRU cache with O(1) get and put.",
	"Find the first non-repeating character in a stream.",
	"Merge k sorted lists into one sorted list.",
	"Detect a cycle in a directed graph.",
	"Given a string, find the length of the longest substring without repeating characters.",
	"Compute the edit distance between two words.",
}
