package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserKeyRoundTrip(t *testing.T) {
	assert.Equal(t, "USER#alice", UserKey("alice"))
	assert.Equal(t, "alice", StripUserKey("USER#alice"))
	// values without the prefix pass through untouched
	assert.Equal(t, "bob", StripUserKey("bob"))
}

func TestViewStripsPrefixAndRenames(t *testing.T) {
	post := Post{
		User:     "USER#alice",
		PostID:   "abc-123",
		Title:    "Hi",
		Body:     "World",
		ImageURL: "https://blob.example/alice/abc-123/image.png",
		Labels:   []string{"travel"},
	}

	view := post.View()
	assert.Equal(t, "alice", view.User)
	assert.Equal(t, "abc-123", view.ID)
	assert.Equal(t, "Hi", view.Title)
	assert.Equal(t, "World", view.Body)
	assert.Equal(t, post.ImageURL, view.Image)
	assert.Equal(t, []string{"travel"}, view.Labels)
}

func TestViewDefaultsMissingLabels(t *testing.T) {
	view := Post{User: "USER#alice", PostID: "p1"}.View()
	assert.NotNil(t, view.Labels)
	assert.Empty(t, view.Labels)
}
