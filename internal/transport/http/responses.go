package http

import (
	"time"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/service"
)

type userResponse struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	College     string    `json:"college"`
	Branch      string    `json:"branch"`
	YearOfStudy string    `json:"yearOfStudy"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLogin   time.Time `json:"lastLogin"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		UserID:      u.Handle,
		FullName:    u.FullName,
		Email:       u.Email,
		College:     u.College,
		Branch:      u.Branch,
		YearOfStudy: u.YearOfStudy,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type profileResponse struct {
	userResponse
	LikedQuestions []questionResponse        `json:"likedQuestions"`
	StudyMaterials []profileMaterialResponse `json:"studyMaterials"`
}

type participantResponse struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// interviewFields is shared by the raw record and the expanded view.
type interviewFields struct {
	ID              string    `json:"_id"`
	Role            string    `json:"role"`
	InterviewType   string    `json:"interviewType"`
	PreferredDate   time.Time `json:"preferredDate"`
	Duration        int       `json:"duration"`
	Status          string    `json:"status"`
	MeetingLink     *string   `json:"googleMeetLink"`
	CalendarEventID *string   `json:"googleCalendarEventId"`
	Notes           string    `json:"notes"`
	Feedback        *string   `json:"feedback"`
	Rating          *int      `json:"rating"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toInterviewFields(r *domain.InterviewRequest) interviewFields {
	return interviewFields{
		ID:              r.ID,
		Role:            string(r.Role),
		InterviewType:   string(r.InterviewType),
		PreferredDate:   r.PreferredDate,
		Duration:        r.Duration,
		Status:          string(r.Status),
		MeetingLink:     r.MeetingLink,
		CalendarEventID: r.CalendarEventID,
		Notes:           r.Notes,
		Feedback:        r.Feedback,
		Rating:          r.Rating,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type interviewRecordResponse struct {
	interviewFields
	Requester   string  `json:"requester"`
	Interviewer *string `json:"interviewer"`
}

func toInterviewRecord(r *domain.InterviewRequest) interviewRecordResponse {
	return interviewRecordResponse{
		interviewFields: toInterviewFields(r),
		Requester:       r.RequesterID,
		Interviewer:     r.InterviewerID,
	}
}

type interviewViewResponse struct {
	interviewFields
	Requester   participantResponse  `json:"requester"`
	Interviewer *participantResponse `json:"interviewer"`
}

func toInterviewView(v *domain.InterviewRequestView) interviewViewResponse {
	resp := interviewViewResponse{
		interviewFields: toInterviewFields(&v.InterviewRequest),
		Requester:       participantResponse(v.Requester),
	}

	if v.Interviewer != nil {
		p := participantResponse(*v.Interviewer)
		resp.Interviewer = &p
	}

	return resp
}

func toInterviewViews(views []domain.InterviewRequestView) []interviewViewResponse {
	out := make([]interviewViewResponse, len(views))
	for i := range views {
		out[i] = toInterviewView(&views[i])
	}

	return out
}

type questionResponse struct {
	ID             string    `json:"_id"`
	Company        string    `json:"company"`
	Role           string    `json:"role"`
	Question       string    `json:"question"`
	Round          string    `json:"round"`
	Difficulty     string    `json:"difficulty"`
	Frequency      string    `json:"frequency"`
	FrequencyCount int       `json:"frequencyCount"`
	Likes          int       `json:"likes"`
	Views          int       `json:"views"`
	PostedBy       string    `json:"postedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toQuestionResponse(q *domain.Question) questionResponse {
	return questionResponse{
		ID:             q.ID,
		Company:        q.Company,
		Role:           q.Role,
		Question:       q.Question,
		Round:          q.Round,
		Difficulty:     q.Difficulty,
		Frequency:      q.Frequency,
		FrequencyCount: q.FrequencyCount,
		Likes:          q.Likes,
		Views:          q.Views,
		PostedBy:       q.PostedBy,
		CreatedAt:      q.CreatedAt,
	}
}

func toQuestionResponses(qs []domain.Question) []questionResponse {
	out := make([]questionResponse, len(qs))
	for i := range qs {
		out[i] = toQuestionResponse(&qs[i])
	}

	return out
}

type studyMaterialResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Link        string    `json:"link"`
	FileType    *string   `json:"fileType,omitempty"`
	Difficulty  *string   `json:"difficulty,omitempty"`
	PostedBy    string    `json:"postedBy"`
	Likes       int       `json:"likes"`
	Views       int       `json:"views"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toStudyMaterialResponse(m *domain.StudyMaterial) studyMaterialResponse {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	return studyMaterialResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Link:        m.Link,
		FileType:    m.FileType,
		Difficulty:  m.Difficulty,
		PostedBy:    m.PostedBy,
		Likes:       m.Likes,
		Views:       m.Views,
		Tags:        tags,
		CreatedAt:   m.CreatedAt,
	}
}

type profileMaterialResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Category    string    `json:"category"`
	AddedAt     time.Time `json:"addedAt"`
}

func toProfileMaterialResponse(m *domain.ProfileMaterial) profileMaterialResponse {
	return profileMaterialResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Link:        m.Link,
		Category:    m.Category,
		AddedAt:     m.AddedAt,
	}
}

func toProfileMaterialResponses(ms []domain.ProfileMaterial) []profileMaterialResponse {
	out := make([]profileMaterialResponse, len(ms))
	for i := range ms {
		out[i] = toProfileMaterialResponse(&ms[i])
	}

	return out
}

type calendarStatusResponse struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
}

func toCalendarStatus(s *service.CalendarStatus) calendarStatusResponse {
	return calendarStatusResponse{Connected: s.Connected, Message: s.Message}
}
