package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NewApplicationEvent struct {
	Type          string `json:"type"`
	VacancyTitle  string `json:"vacancy_title"`
	CandidateName string `json:"candidate_name"`
	Timestamp     string `json:"timestamp"`
}

// Notifier satisfies the vacancy usecase's ApplicationNotifier.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyNewApplication(authorID uuid.UUID, vacancyTitle, candidateName string) {
	if n == nil || n.hub == nil || authorID == uuid.Nil {
		return
	}

	evt := NewApplicationEvent{
		Type:          "new_application",
		VacancyTitle:  vacancyTitle,
		CandidateName: candidateName,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Send(authorID, b)
}
