package types

// Event names emitted by the upstream telephony notification feed.
const (
	EventQueueCallerJoin    = "queue_caller_join"
	EventQueueCallerLeave   = "queue_caller_leave"
	EventQueueCallerAbandon = "queue_caller_abandon"
)

// QueueEventPayload mirrors the upstream notification body. Depending on the
// PBX revision the caller number and display name arrive in different fields,
// so every known alternative is kept and resolved through Number/Name.
type QueueEventPayload struct {
	Queue             string `json:"queue"`
	ConnectedLineNum  string `json:"connectedlinenum"`
	CallerIDNum       string `json:"calleridnum"`
	CallerNumber      string `json:"caller_number"`
	ConnectedLineName string `json:"connectedlinename"`
	CallerIDName      string `json:"calleridname"`
	CallerName        string `json:"caller_name"`
}

// Number returns the best available caller number. Priority:
// connectedlinenum, calleridnum, caller_number. Empty when none is present;
// such callers are tracked only in aggregate, never correlated.
func (p *QueueEventPayload) Number() string {
	switch {
	case p.ConnectedLineNum != "":
		return p.ConnectedLineNum
	case p.CallerIDNum != "":
		return p.CallerIDNum
	default:
		return p.CallerNumber
	}
}

// Name returns the best available display name, with the same field priority
// as Number.
func (p *QueueEventPayload) Name() string {
	switch {
	case p.ConnectedLineName != "":
		return p.ConnectedLineName
	case p.CallerIDName != "":
		return p.CallerIDName
	default:
		return p.CallerName
	}
}
