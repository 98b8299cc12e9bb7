package reports

// Kind selects which reported_content queue a flag lives in.
type Kind string

const (
	KindRequests Kind = "requests"
	KindComments Kind = "comments"
	KindUsers    Kind = "users"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindRequests, KindComments, KindUsers:
		return Kind(s), true
	}
	return "", false
}

// CreateReportRequest is the body for flagging content.
type CreateReportRequest struct {
	Kind     string `json:"kind" binding:"required"`
	TargetID string `json:"targetId" binding:"required"`
}

// ReportResponse tells the reporter whether their report was the first
// one for the target. Repeat reports are not a failure.
type ReportResponse struct {
	Kind     string `json:"kind"`
	TargetID string `json:"targetId"`
	Status   string `json:"status"`
}

const (
	StatusReported        = "reported"
	StatusAlreadyReported = "already_reported"
)
