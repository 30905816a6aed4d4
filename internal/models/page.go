package models

// Event feed sort fields accepted from callers. Anything else falls back
// to SortByTime.
const (
	SortByTime    = "time"
	SortByCreated = "created_at"
)

// PageRequest describes one page of a sorted event listing. A nil
// *PageRequest anywhere in the feed API means "no page": the caller gets
// an empty page back, never an error.
type PageRequest struct {
	Page int
	Size int
	Sort string
	Desc bool
}

func (p *PageRequest) Valid() bool {
	return p != nil && p.Page >= 0 && p.Size >= 1
}

func (p *PageRequest) Offset() int {
	return p.Page * p.Size
}

func (p *PageRequest) SortField() string {
	if p == nil {
		return SortByTime
	}
	switch p.Sort {
	case SortByCreated:
		return SortByCreated
	default:
		return SortByTime
	}
}

// EventPage is a visibility-filtered slice of the feed. Totals are
// computed over the filtered set, not the raw table.
type EventPage struct {
	Events        []Event `json:"events"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int64   `json:"total_elements"`
	TotalPages    int     `json:"total_pages"`
}

func EmptyEventPage() EventPage {
	return EventPage{Events: []Event{}}
}

func NewEventPage(events []Event, req *PageRequest, total int64) EventPage {
	if events == nil {
		events = []Event{}
	}
	return EventPage{
		Events:        events,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pageCount(total, req.Size),
	}
}

func pageCount(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
