package constvars

type ContextKey string

const (
	ContextRequestIDKey ContextKey = "request_id"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
