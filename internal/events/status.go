package events

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCancelled Status = "cancelled"
	StatusFinished  Status = "finished"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusDraft, StatusPublished, StatusCancelled, StatusFinished:
		return true
	}
	return false
}
