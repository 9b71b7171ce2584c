package server

import "github.com/samber/lo"

// jokes is the fixed pool the "joke" command draws from.
var jokes = []string{
	"What do you call a fish with no eyes? A fsh.",
	"Why did the scarecrow win an award? Because he was outstanding in his field.",
	"I would tell you a UDP joke, but you might not get it.",
	"Why do programmers prefer dark mode? Because light attracts bugs.",
	"There are only two hard things in computer science: cache invalidation, naming things, and off-by-one errors.",
	"A SQL query walks into a bar, walks up to two tables and asks: may I join you?",
	"Why did the golfer bring two pairs of pants? In case he got a hole in one.",
	"What do you call eight hobbits? A hobbyte.",
	"Why don't scientists trust atoms? They make up everything.",
	"I used to play piano by ear, but now I use my hands.",
}

// randomJoke draws one joke uniformly at random.
func randomJoke() string {
	return lo.Sample(jokes)
}
