package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type MessageCreationData struct {
	Sender   UserId
	ThreadId ThreadId
	Text     MsgText
}

type Message struct {
	Id       MsgId
	Sender   User
	ThreadId ThreadId
	Text     MsgText
	Created  time.Time
	IsRead   bool
}
