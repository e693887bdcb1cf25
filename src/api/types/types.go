package types

import "time"

// Tally is the accumulated sentiment for one poll item. A tally that was
// never voted on is simply absent from the ledger and defaults to {0,0}.
type Tally struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// Vote choices accepted by the transition engine. An empty previous choice
// means the voter had not voted before.
const (
	ChoiceYes = "yes"
	ChoiceNo  = "no"
)

// VoteIntent is one voter's choice change. PreviousChoice is asserted by the
// client; the server keeps no per-voter identity.
type VoteIntent struct {
	ID             string
	Choice         string
	PreviousChoice string
}

// PollItem is one votable entry in the catalog, either a planned event
// shipped with the backend or a user-submitted event request.
type PollItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	City        string `json:"city"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Yes         int    `json:"yes"`
	No          int    `json:"no"`
}

// EventRequest is a volunteer's freeform event proposal. Records are
// append-only; every descriptive field is optional.
type EventRequest struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	City       string    `json:"city"`
	Type       string    `json:"type"`
	Date       string    `json:"date"`
	People     string    `json:"people"`
	Message    string    `json:"message"`
	Motivation []string  `json:"motivation"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ForumPost is one discussion-board entry.
type ForumPost struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
