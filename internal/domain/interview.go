package domain

import (
	"time"

	"github.com/YusovID/campus-prep/internal/apperrors"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusRejected  Status = "Rejected"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

type Role string

const (
	RoleSDE            Role = "SDE"
	RoleAnalyst        Role = "Analyst"
	RoleDataScientist  Role = "Data Scientist"
	RoleProductManager Role = "Product Manager"
	RoleDevOps         Role = "DevOps Engineer"
	RoleFrontend       Role = "Frontend Developer"
	RoleBackend        Role = "Backend Developer"
	RoleFullStack      Role = "Full Stack Developer"
	RoleQA             Role = "QA Engineer"
	RoleDesigner       Role = "UI/UX Designer"
	RoleOther          Role = "Other"
)

var Roles = []Role{
	RoleSDE, RoleAnalyst, RoleDataScientist, RoleProductManager, RoleDevOps,
	RoleFrontend, RoleBackend, RoleFullStack, RoleQA, RoleDesigner, RoleOther,
}

func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}

	return false
}

type InterviewType string

const (
	InterviewTechnical InterviewType = "Technical"
	InterviewHR        InterviewType = "HR"
	InterviewAptitude  InterviewType = "Aptitude"
	InterviewMixed     InterviewType = "Mixed"
)

func (t InterviewType) IsValid() bool {
	switch t {
	case InterviewTechnical, InterviewHR, InterviewAptitude, InterviewMixed:
		return true
	default:
		return false
	}
}

// Durations lists the allowed interview lengths in minutes.
var Durations = []int{15, 30, 45}

func IsValidDuration(minutes int) bool {
	for _, d := range Durations {
		if d == minutes {
			return true
		}
	}

	return false
}

type InterviewRequest struct {
	ID              string        `db:"id"`
	RequesterID     string        `db:"requester_id"`
	InterviewerID   *string       `db:"interviewer_id"`
	Role            Role          `db:"role"`
	InterviewType   InterviewType `db:"interview_type"`
	PreferredDate   time.Time     `db:"preferred_date"`
	Duration        int           `db:"duration"`
	Status          Status        `db:"status"`
	MeetingLink     *string       `db:"meeting_link"`
	CalendarEventID *string       `db:"calendar_event_id"`
	Notes           string        `db:"notes"`
	Feedback        *string       `db:"feedback"`
	Rating          *int          `db:"rating"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// Participant is the public projection of a user attached to a request.
type Participant struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
}

type InterviewRequestView struct {
	InterviewRequest
	Requester   Participant
	Interviewer *Participant
}

// InterviewFilter selects records for FindMany. Zero fields are ignored;
// ParticipantID matches either side of the request.
type InterviewFilter struct {
	RequesterID        string
	ExcludeRequesterID string
	ParticipantID      string
	Statuses           []Status
}

// TransitionGuard is evaluated by the store in the same statement that
// applies the patch.
type TransitionGuard struct {
	Statuses       []Status
	RequesterID    string
	NotRequesterID string
	InterviewerID  string
}

type InterviewPatch struct {
	Status          Status
	InterviewerID   *string
	MeetingLink     *string
	CalendarEventID *string
	Feedback        *string
	Rating          *int
	UpdatedAt       time.Time
}

const (
	reasonOwnRequest   = "cannot accept your own interview request"
	reasonNotPending   = "interview request is not pending"
	reasonNotAccepted  = "interview request is not accepted"
	reasonNotCancel    = "interview request cannot be cancelled"
	reasonNotInterview = "only the assigned interviewer can complete the interview"
	reasonNotRequester = "only the requester can cancel the interview"
	reasonConcurrent   = "interview request was modified concurrently"
)

// CheckAccept validates the Pending -> Accepted transition for actor.
func (r *InterviewRequest) CheckAccept(actor string) error {
	if r.RequesterID == actor {
		return &apperrors.InvalidTransitionError{Reason: reasonOwnRequest}
	}

	if r.Status != StatusPending {
		return &apperrors.InvalidTransitionError{Reason: reasonNotPending}
	}

	return nil
}

// CheckComplete validates the Accepted -> Completed transition for actor.
func (r *InterviewRequest) CheckComplete(actor string) error {
	if r.Status != StatusAccepted {
		return &apperrors.InvalidTransitionError{Reason: reasonNotAccepted}
	}

	if r.InterviewerID == nil || *r.InterviewerID != actor {
		return &apperrors.ForbiddenError{Reason: reasonNotInterview}
	}

	return nil
}

// CheckCancel validates the {Pending, Accepted} -> Cancelled transition for actor.
func (r *InterviewRequest) CheckCancel(actor string) error {
	if r.RequesterID != actor {
		return &apperrors.ForbiddenError{Reason: reasonNotRequester}
	}

	if r.Status.Terminal() {
		return &apperrors.InvalidTransitionError{Reason: reasonNotCancel}
	}

	return nil
}

func ConcurrentModification() error {
	return &apperrors.InvalidTransitionError{Reason: reasonConcurrent}
}

// AcceptGuard is the store-side form of CheckAccept.
func AcceptGuard(actor string) TransitionGuard {
	return TransitionGuard{Statuses: []Status{StatusPending}, NotRequesterID: actor}
}

func CompleteGuard(actor string) TransitionGuard {
	return TransitionGuard{Statuses: []Status{StatusAccepted}, InterviewerID: actor}
}

func CancelGuard(actor string) TransitionGuard {
	return TransitionGuard{Statuses: []Status{StatusPending, StatusAccepted}, RequesterID: actor}
}

// CalendarEvent is what the calendar adapter hands back on success.
type CalendarEvent struct {
	EventID     string
	MeetingLink string
}

// InterviewEvent carries everything the calendar adapter needs to book a
// session.
type InterviewEvent struct {
	RequestID        string
	Role             Role
	InterviewType    InterviewType
	Start            time.Time
	DurationMinutes  int
	Notes            string
	RequesterEmail   string
	InterviewerEmail string
}

type CalendarGrant struct {
	UserID       string    `db:"user_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	TokenType    string    `db:"token_type"`
	Expiry       time.Time `db:"expiry"`
	UpdatedAt    time.Time `db:"updated_at"`
}
