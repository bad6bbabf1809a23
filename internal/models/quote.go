package models

import (
	"strings"
	"time"
)

// Author is a person a quote is attributed to
type Author struct {
	// ID is the Discord user ID when the author is a member, empty for free-text authors
	ID string

	// Name is the display name used as the answer in the guessing game
	Name string

	// Aliases are alternative names accepted as a correct guess
	Aliases []string
}

// Matches reports whether answer names this author, ignoring case and surrounding space
func (a *Author) Matches(answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	if strings.EqualFold(answer, strings.TrimSpace(a.Name)) {
		return true
	}
	for _, alias := range a.Aliases {
		if strings.EqualFold(answer, strings.TrimSpace(alias)) {
			return true
		}
	}
	return false
}

// Quote is one saved quote or conversation owned by a tenant
type Quote struct {
	// ID is the internal record identifier
	ID string

	// Token is the short shareable identifier
	Token string

	// TenantID is the owning tenant
	TenantID string

	// CreatorID is the Discord user who saved the quote
	CreatorID string

	// Statements holds one line for a quote, several for a conversation
	Statements []string

	// Authors holds the attributions; Authors[0] is the answer in the guessing game
	Authors []*Author

	// Context is optional free text describing the situation
	Context string

	// CreatedAt is when the quote was saved
	CreatedAt time.Time
}

// IsConversation reports whether the quote has more than one statement
func (q *Quote) IsConversation() bool {
	return len(q.Statements) > 1
}

// PrimaryAuthor returns the author used as the correct guess, or nil
func (q *Quote) PrimaryAuthor() *Author {
	if len(q.Authors) == 0 {
		return nil
	}
	return q.Authors[0]
}
