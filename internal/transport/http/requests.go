package http

import "time"

type signupRequest struct {
	UserID      string `json:"userId" validate:"required,custom_id,min=3,max=50"`
	FullName    string `json:"fullName" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	College     string `json:"college" validate:"required,max=200"`
	Branch      string `json:"branch" validate:"required,max=100"`
	YearOfStudy string `json:"yearOfStudy" validate:"required,max=20"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createInterviewRequest struct {
	Role          string    `json:"role" validate:"required,role"`
	InterviewType string    `json:"interviewType" validate:"required,interview_type"`
	PreferredDate time.Time `json:"preferredDate" validate:"required"`
	Duration      int       `json:"duration" validate:"required,interview_duration"`
	Notes         string    `json:"notes" validate:"max=2000"`
}

type completeInterviewRequest struct {
	Feedback string `json:"feedback" validate:"max=5000"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

type createQuestionRequest struct {
	Company        string `json:"company" validate:"required,max=100"`
	Role           string `json:"role" validate:"required,max=100"`
	Question       string `json:"question" validate:"required,max=5000"`
	Round          string `json:"round" validate:"required,question_round"`
	Difficulty     string `json:"difficulty" validate:"required,question_difficulty"`
	Frequency      string `json:"frequency" validate:"required,question_frequency"`
	FrequencyCount int    `json:"frequencyCount" validate:"min=0"`
	PostedBy       string `json:"postedBy" validate:"max=100"`
}

type createStudyMaterialRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=2000"`
	Category    string   `json:"category" validate:"required,material_category"`
	Link        string   `json:"link" validate:"required,url"`
	FileType    string   `json:"fileType" validate:"omitempty,material_file_type"`
	Difficulty  string   `json:"difficulty" validate:"omitempty,material_difficulty"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
}

type addProfileMaterialRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Link        string `json:"link" validate:"required,url"`
	Category    string `json:"category" validate:"max=100"`
}

type postChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}
