package domain

import "time"

type Thread struct {
	Id           ThreadId
	Participants []User
	Created      time.Time
	Updated      time.Time // time of the newest message, Created for empty threads
}

// HasParticipant reports whether the user is a member of the thread.
func (t *Thread) HasParticipant(id UserId) bool {
	for _, p := range t.Participants {
		if p.Id == id {
			return true
		}
	}
	return false
}

// CanonicalPair orders a participant pair so that (a, b) and (b, a) map to the same key.
func CanonicalPair(a, b UserId) (low, high UserId) {
	if a <= b {
		return a, b
	}
	return b, a
}
