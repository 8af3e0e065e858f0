package domain

type (
	UserId   = int64
	Username = string

	ThreadId = int64

	MsgId   = int64
	MsgText = string
)

// MaxMessageLength is the upper bound of a message text in characters.
const MaxMessageLength = 4096

// ThreadParticipantsCount is the number of participant references a thread is created with.
const ThreadParticipantsCount = 2
