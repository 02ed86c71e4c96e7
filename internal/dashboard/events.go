package dashboard

// Event type tags written to the event log. Failure variants are suffixed
// distinctly from their success counterparts.
const (
	EventDashboardOpened = "dashboard_opened"
	EventTabSelected     = "tab_selected"

	EventVideoDetailsFetched     = "video_details_fetched"
	EventVideoDetailsFetchFailed = "video_details_fetch_failed"
	EventVideoRateAttempted      = "video_rate_attempted"
	EventVideoRateFailed         = "video_rate_failed"

	EventCommentsFetched     = "comments_fetched"
	EventCommentsFetchFailed = "comments_fetch_failed"
	EventCommentPosted       = "comment_posted"
	EventCommentPostFailed   = "comment_post_failed"
	EventCommentDeleted      = "comment_deleted"

	EventEditorLoaded         = "editor_loaded"
	EventEditorLoadFailed     = "editor_load_failed"
	EventVideoUpdateAttempted = "video_update_attempted"
	EventVideoUpdateFailed    = "video_update_failed"

	EventNotesFetched     = "notes_fetched"
	EventNotesFetchFailed = "notes_fetch_failed"
	EventNoteAdded        = "note_added"
	EventNoteAddFailed    = "note_add_failed"
	EventNoteUpdated      = "note_updated"
	EventNoteUpdateFailed = "note_update_failed"
	EventNoteDeleted      = "note_deleted"
	EventNoteDeleteFailed = "note_delete_failed"
)
