package domain

import (
	"fmt"
	"time"
)

// for debug
func (m *Message) String() string {
	return fmt.Sprintf("[id:%d, sender:%d, thread_id:%d, created:%s, is_read:%t, text:%q]",
		m.Id, m.Sender.Id, m.ThreadId, m.Created.Format(time.StampMilli), m.IsRead, m.Text)
}

func (t *Thread) String() string {
	ids := make([]UserId, 0, len(t.Participants))
	for _, p := range t.Participants {
		ids = append(ids, p.Id)
	}
	return fmt.Sprintf("[id:%d, participants:%v, created:%s, updated:%s]",
		t.Id, ids, t.Created.Format(time.StampMilli), t.Updated.Format(time.StampMilli))
}
