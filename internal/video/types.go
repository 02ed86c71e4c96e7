package video

import "strconv"

// Snapshot is the ephemeral view of one video. It is fetched per view, held
// in panel memory only and never persisted.
type Snapshot struct {
	ID           string
	Title        string
	Description  string
	ThumbnailURL string
	PublishedAt  string
	ChannelTitle string
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Privacy      string
}

// Comment is the ephemeral view of one top-level comment with its replies.
// Local marks a client-synthesized comment that was never confirmed upstream.
type Comment struct {
	ID          string
	Author      string
	Text        string
	PublishedAt string
	LikeCount   int64
	ReplyCount  int64
	Replies     []Comment
	Local       bool
}

type videoListResponse struct {
	Items []videoResource `json:"items"`
}

type videoResource struct {
	ID         string          `json:"id"`
	Snippet    videoSnippet    `json:"snippet"`
	Statistics videoStatistics `json:"statistics"`
	Status     videoStatus     `json:"status"`
}

type videoSnippet struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	PublishedAt  string       `json:"publishedAt"`
	ChannelTitle string       `json:"channelTitle"`
	Thumbnails   thumbnailSet `json:"thumbnails"`
}

type thumbnailSet struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
	High    *thumbnail `json:"high"`
	Maxres  *thumbnail `json:"maxres"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// The platform reports video counters as decimal text.
type videoStatistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

type videoStatus struct {
	PrivacyStatus string `json:"privacyStatus"`
}

type commentThreadListResponse struct {
	Items []commentThreadResource `json:"items"`
}

type commentThreadResource struct {
	ID      string               `json:"id"`
	Snippet commentThreadSnippet `json:"snippet"`
	Replies *commentReplies      `json:"replies"`
}

type commentThreadSnippet struct {
	TotalReplyCount int64           `json:"totalReplyCount"`
	TopLevelComment commentResource `json:"topLevelComment"`
}

type commentReplies struct {
	Comments []commentResource `json:"comments"`
}

type commentResource struct {
	ID      string         `json:"id"`
	Snippet commentSnippet `json:"snippet"`
}

type commentSnippet struct {
	AuthorDisplayName string `json:"authorDisplayName"`
	TextDisplay       string `json:"textDisplay"`
	PublishedAt       string `json:"publishedAt"`
	LikeCount         int64  `json:"likeCount"`
}

func snapshotFromResource(resource videoResource) Snapshot {
	return Snapshot{
		ID:           resource.ID,
		Title:        resource.Snippet.Title,
		Description:  resource.Snippet.Description,
		ThumbnailURL: bestThumbnail(resource.Snippet.Thumbnails),
		PublishedAt:  resource.Snippet.PublishedAt,
		ChannelTitle: resource.Snippet.ChannelTitle,
		ViewCount:    parseCounter(resource.Statistics.ViewCount),
		LikeCount:    parseCounter(resource.Statistics.LikeCount),
		CommentCount: parseCounter(resource.Statistics.CommentCount),
		Privacy:      resource.Status.PrivacyStatus,
	}
}

func bestThumbnail(set thumbnailSet) string {
	for _, candidate := range []*thumbnail{set.Maxres, set.High, set.Medium, set.Default} {
		if candidate != nil && candidate.URL != "" {
			return candidate.URL
		}
	}
	return ""
}

// parseCounter decodes a textual counter. Malformed or negative input maps
// to zero so snapshot counters stay non-negative.
func parseCounter(text string) int64 {
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func commentFromThread(thread commentThreadResource) Comment {
	top := thread.Snippet.TopLevelComment
	commentID := top.ID
	if commentID == "" {
		commentID = thread.ID
	}
	comment := Comment{
		ID:          commentID,
		Author:      top.Snippet.AuthorDisplayName,
		Text:        top.Snippet.TextDisplay,
		PublishedAt: top.Snippet.PublishedAt,
		LikeCount:   top.Snippet.LikeCount,
		ReplyCount:  thread.Snippet.TotalReplyCount,
	}
	if thread.Replies != nil {
		for _, reply := range thread.Replies.Comments {
			comment.Replies = append(comment.Replies, Comment{
				ID:          reply.ID,
				Author:      reply.Snippet.AuthorDisplayName,
				Text:        reply.Snippet.TextDisplay,
				PublishedAt: reply.Snippet.PublishedAt,
				LikeCount:   reply.Snippet.LikeCount,
			})
		}
	}
	return comment
}
