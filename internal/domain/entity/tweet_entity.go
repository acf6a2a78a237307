package entity

import "time"

// Tweet is a content node. Replies and retweets are first-class tweets:
// a reply is an independent Tweet whose author id is appended to the
// parent's Replies set, and a retweet copies Content/Image from its origin
// at creation time (never re-synced) with RetweetedFrom pointing back.
//
// TweetedBy is immutable once created. RetweetedFrom may dangle after the
// origin is deleted; deletes do not cascade.
type Tweet struct {
	ID            string
	Content       string
	TweetedBy     string
	Image         string
	Likes         IDSet
	RetweetedBy   IDSet
	Replies       IDSet
	RetweetedFrom string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsRetweet reports whether the tweet was created by a retweet operation.
func (t *Tweet) IsRetweet() bool { return t.RetweetedFrom != "" }
