package models

import "strings"

// UserKeyPrefix namespaces identity values inside the shared table key space.
// It is applied on every write and stripped on every read; existing data
// depends on it, so it must never change.
const UserKeyPrefix = "USER#"

// Post is one stored item in the posts table. The attribute names match the
// data already written by earlier deployments (post_title, post_content, ...).
type Post struct {
	User     string   `dynamodbav:"user" json:"user"`
	PostID   string   `dynamodbav:"post_id" json:"post_id"`
	Title    string   `dynamodbav:"post_title" json:"title"`
	Body     string   `dynamodbav:"post_content" json:"body"`
	ImageURL string   `dynamodbav:"post_image" json:"image"`
	Labels   []string `dynamodbav:"label,omitempty" json:"label"`
}

// PostView is the projection returned by the listing endpoint.
type PostView struct {
	User   string   `json:"user"`
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Image  string   `json:"image"`
	Labels []string `json:"label"`
}

// UserKey returns the namespaced partition key for an identity.
func UserKey(identity string) string {
	return UserKeyPrefix + identity
}

// StripUserKey removes the namespacing prefix from a stored user value.
func StripUserKey(stored string) string {
	return strings.TrimPrefix(stored, UserKeyPrefix)
}

// View projects a stored item to the public listing shape. A missing label
// attribute becomes an empty list, never null.
func (p Post) View() PostView {
	labels := p.Labels
	if labels == nil {
		labels = []string{}
	}
	return PostView{
		User:   StripUserKey(p.User),
		ID:     p.PostID,
		Title:  p.Title,
		Body:   p.Body,
		Image:  p.ImageURL,
		Labels: labels,
	}
}
