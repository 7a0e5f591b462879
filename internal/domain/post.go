package domain

import "time"

// Post is the stored record. AuthorEmail never leaves the service
// layer: feed responses are built from AnnotatedPost, which has no
// author field at all.
type Post struct {
	Id          PostId
	Text        string
	AuthorEmail Email
	Date        time.Time
}

// StatisticCount is one aggregated row of per-post statistics.
type StatisticCount struct {
	Content string `json:"content"`
	Count   int    `json:"count"`
}

type PostPermissions struct {
	CanDelete bool `json:"can_delete"`
}

// AnnotatedPost is a post as seen by a feed viewer: statistics joined
// in, permissions evaluated for that viewer, author omitted.
type AnnotatedPost struct {
	Id          PostId           `json:"uuid"`
	Text        string           `json:"text"`
	Date        time.Time        `json:"date"`
	Statistics  []StatisticCount `json:"statistics"`
	Permissions PostPermissions  `json:"permissions"`
}
