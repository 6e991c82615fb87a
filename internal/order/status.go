package order

import "strings"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipping  Status = "shipping"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// StepCancelled is the progress step of a cancelled order. It is off the
// linear path so a progress bar never renders it as "before pending".
const StepCancelled = -1

var steps = []Status{StatusPending, StatusConfirmed, StatusShipping, StatusDelivered}

// Normalize lowercases s and folds the legacy "shipped" spelling into
// shipping. It does not validate.
func Normalize(s Status) Status {
	n := Status(strings.ToLower(strings.TrimSpace(string(s))))
	if n == "shipped" {
		return StatusShipping
	}
	return n
}

// Parse accepts any casing of the five known statuses.
func Parse(s string) (Status, error) {
	n := Normalize(Status(s))
	switch n {
	case StatusPending, StatusConfirmed, StatusShipping, StatusDelivered, StatusCancelled:
		return n, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Progress struct {
	Step      int  `json:"step"`
	Cancelled bool `json:"cancelled"`
	Total     int  `json:"total"`
}

// ProgressOf maps a status onto the four-step path. Unknown statuses land on
// the first step.
func ProgressOf(s Status) Progress {
	n := Normalize(s)
	if n == StatusCancelled {
		return Progress{Step: StepCancelled, Cancelled: true, Total: len(steps)}
	}
	for i, st := range steps {
		if st == n {
			return Progress{Step: i, Total: len(steps)}
		}
	}
	return Progress{Step: 0, Total: len(steps)}
}

type Tone string

const (
	ToneProcessing Tone = "processing"
	ToneWarning    Tone = "warning"
	ToneSuccess    Tone = "success"
	ToneError      Tone = "error"
)

type Badge struct {
	Status Status `json:"status"`
	Tone   Tone   `json:"tone"`
	Label  string `json:"label"`
}

var badges = map[Status]Badge{
	StatusPending:   {Status: StatusPending, Tone: ToneProcessing, Label: "Chờ xác nhận"},
	StatusConfirmed: {Status: StatusConfirmed, Tone: ToneWarning, Label: "Đã xác nhận"},
	StatusShipping:  {Status: StatusShipping, Tone: ToneProcessing, Label: "Đang giao"},
	StatusDelivered: {Status: StatusDelivered, Tone: ToneSuccess, Label: "Đã giao"},
	StatusCancelled: {Status: StatusCancelled, Tone: ToneError, Label: "Đã hủy"},
}

// BadgeFor falls back to the pending badge for unknown statuses.
func BadgeFor(s Status) Badge {
	if b, ok := badges[Normalize(s)]; ok {
		return b
	}
	return badges[StatusPending]
}

// AdminStatusOptions lists every status an admin may pick. Which transitions
// are legal is decided by the backend alone.
func AdminStatusOptions() []Badge {
	out := make([]Badge, 0, len(steps)+1)
	for _, s := range append(append([]Status{}, steps...), StatusCancelled) {
		out = append(out, badges[s])
	}
	return out
}

// CanCancel reports whether the customer is offered the cancel action.
func CanCancel(s Status) bool {
	return Normalize(s) == StatusPending
}
