package video

// Demo data keeps the dashboard populated when the proxy endpoint is
// unreachable. Content is stable so a disconnected environment renders the
// same dashboard every time.

// DemoSnapshot returns a fully populated placeholder snapshot whose id
// matches the requested video.
func DemoSnapshot(videoID string) Snapshot {
	return Snapshot{
		ID:           videoID,
		Title:        "How I Edit My Videos: Full Workflow Tour",
		Description:  "A walkthrough of my editing setup, from rough cut to color grading. Chapters below.\n\n00:00 Intro\n02:14 Rough cut\n09:30 Sound design\n17:45 Color",
		ThumbnailURL: "https://i.ytimg.com/vi/" + videoID + "/maxresdefault.jpg",
		PublishedAt:  "2024-03-08T16:00:00Z",
		ChannelTitle: "Studio Notes",
		ViewCount:    48213,
		LikeCount:    2307,
		CommentCount: 184,
		Privacy:      "public",
	}
}

// DemoComments returns a stable placeholder comment sequence.
func DemoComments() []Comment {
	return []Comment{
		{
			ID:          "demo-comment-1",
			Author:      "Priya Raman",
			Text:        "The chapter on sound design alone was worth it. Subscribed!",
			PublishedAt: "2024-03-09T08:12:45Z",
			LikeCount:   152,
			ReplyCount:  2,
			Replies: []Comment{
				{
					ID:          "demo-comment-1-reply-1",
					Author:      "Studio Notes",
					Text:        "Thanks! A longer sound design deep dive is coming next month.",
					PublishedAt: "2024-03-09T09:01:10Z",
					LikeCount:   34,
				},
				{
					ID:          "demo-comment-1-reply-2",
					Author:      "Marcus Webb",
					Text:        "Seconding this, the de-essing trick fixed my whole podcast.",
					PublishedAt: "2024-03-09T11:47:02Z",
					LikeCount:   9,
				},
			},
		},
		{
			ID:          "demo-comment-2",
			Author:      "Lena Ortiz",
			Text:        "Which color profile are you grading against? The skin tones look great.",
			PublishedAt: "2024-03-10T14:25:33Z",
			LikeCount:   48,
		},
		{
			ID:          "demo-comment-3",
			Author:      "Tom Keller",
			Text:        "Came for the workflow, stayed for the keyboard shortcuts at 19:20.",
			PublishedAt: "2024-03-11T19:03:21Z",
			LikeCount:   21,
		},
	}
}
