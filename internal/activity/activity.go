// Package activity records hiring events shown in the dashboard's recent activity feed.
package activity

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind is the type of a hiring event.
type Kind string

// Activity kinds.
const (
	KindUpload    Kind = "upload"
	KindInterview Kind = "interview"
	KindHire      Kind = "hire"
	KindReject    Kind = "reject"
)

// Icon returns the two-letter avatar text for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindUpload:
		return "UP"
	case KindInterview:
		return "IN"
	case KindHire:
		return "HI"
	case KindReject:
		return "RE"
	default:
		return "AC"
	}
}

// Color returns the avatar colour classes for the kind.
func (k Kind) Color() string {
	switch k {
	case KindUpload:
		return "bg-blue-100 text-blue-700"
	case KindInterview:
		return "bg-purple-100 text-purple-700"
	case KindHire:
		return "bg-green-100 text-green-700"
	case KindReject:
		return "bg-red-100 text-red-700"
	default:
		return "bg-gray-100 text-gray-700"
	}
}

// Activity is a single event in the feed.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Role        string    `json:"role,omitempty"`
	At          time.Time `json:"at"`
}

// Store persists activities.
type Store interface {
	RecordActivity(ctx context.Context, a Activity) error
	ListActivities(ctx context.Context, limit int) ([]Activity, error)
}

// Upload builds the activity recorded after a candidate file upload.
func Upload(fileName, role string, at time.Time) Activity {
	return Activity{
		ID:          uuid.New(),
		Kind:        KindUpload,
		Title:       "Candidates Uploaded",
		Description: fmt.Sprintf("%s has been uploaded for role: %s", fileName, role),
		Role:        role,
		At:          at,
	}
}

// Feed is an in-memory Store, newest first.
type Feed struct {
	mu    sync.RWMutex
	items []Activity
}

// NewFeed returns a feed holding the given activities.
func NewFeed(items ...Activity) *Feed {
	f := &Feed{}
	for _, a := range items {
		f.insert(a)
	}
	return f
}

// RecordActivity adds a to the feed. A zero ID is replaced with a new one.
func (f *Feed) RecordActivity(_ context.Context, a Activity) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.mu.Lock()
	f.insert(a)
	f.mu.Unlock()
	return nil
}

// ListActivities returns up to limit activities, newest first. A non-positive limit returns all.
func (f *Feed) ListActivities(_ context.Context, limit int) ([]Activity, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if limit <= 0 || limit > len(f.items) {
		limit = len(f.items)
	}
	return slices.Clone(f.items[:limit]), nil
}

func (f *Feed) insert(a Activity) {
	i, _ := slices.BinarySearchFunc(f.items, a, func(e, target Activity) int {
		// newest first; equal timestamps keep insertion order
		if e.At.Before(target.At) {
			return 1
		}
		return -1
	})
	f.items = slices.Insert(f.items, i, a)
}

// Demo returns the sample activities a fresh dashboard starts with, relative to now.
func Demo(now time.Time) []Activity {
	return []Activity{
		{ID: uuid.New(), Kind: KindUpload, Title: "Candidates Uploaded", Description: "You uploaded 15 new candidates for screening", Role: "Frontend Developer", At: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), Kind: KindInterview, Title: "Interview Scheduled", Description: "Interview scheduled with top 5 candidates", Role: "Data Scientist", At: now.Add(-26 * time.Hour)},
		{ID: uuid.New(), Kind: KindHire, Title: "Candidate Hired", Description: "John Doe accepted the job offer", Role: "UX Designer", At: now.Add(-3 * 24 * time.Hour)},
		{ID: uuid.New(), Kind: KindReject, Title: "Candidates Rejected", Description: "3 candidates were rejected after screening", Role: "Product Manager", At: now.Add(-5 * 24 * time.Hour)},
	}
}

// Ago renders t relative to now, e.g. "2 hours ago", "Yesterday", "5 days ago".
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	case d < 48*time.Hour:
		return "Yesterday"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
