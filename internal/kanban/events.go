package kanban

import "github.com/plannyhq/planny/internal/domain"

type EventKind string

const (
	EventTasksUpdated     EventKind = "tasks_updated"
	EventBoardListChanged EventKind = "board_list_changed"
	EventChatMessage      EventKind = "chat_message"
)

// Event is one notification delivered to every registered listener. BoardID
// is set for tasks_updated, Message for chat_message.
type Event struct {
	Kind    EventKind           `json:"kind"`
	BoardID int64               `json:"board_id,omitempty"`
	Message *domain.ChatMessage `json:"message,omitempty"`
}

// TasksUpdated signals that the given board's task set changed.
func TasksUpdated(boardID int64) Event {
	return Event{Kind: EventTasksUpdated, BoardID: boardID}
}

// BoardListChanged signals that a board was created, renamed, or deleted.
func BoardListChanged() Event {
	return Event{Kind: EventBoardListChanged}
}

// ChatMessageReceived carries a newly committed chat message.
func ChatMessageReceived(m *domain.ChatMessage) Event {
	return Event{Kind: EventChatMessage, Message: m}
}
