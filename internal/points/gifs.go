package points

import "math/rand/v2"

// awardGifs is the celebration pool appended to award replies.
var awardGifs = []string{
	"https://media.giphy.com/media/11sBLVxNs7v6WA/giphy.gif",
	"https://media.giphy.com/media/l0MYt5jPR6QX5pnqM/giphy.gif",
	"https://media.giphy.com/media/xT0xeJpnrWC4XWblEk/giphy.gif",
	"https://media.giphy.com/media/26u4cqiYI30juCOGY/giphy.gif",
	"https://media.giphy.com/media/3oz8xAFtqoOUUrsh7W/giphy.gif",
}

// PickAwardGif returns a random celebration gif, or "" when the pool is
// empty so callers can skip the line entirely.
func PickAwardGif() string {
	if len(awardGifs) == 0 {
		return ""
	}
	return awardGifs[rand.IntN(len(awardGifs))]
}
