package domain

import (
	"slices"
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID             string    `db:"id"`
	Handle         string    `db:"handle"`
	FullName       string    `db:"full_name"`
	Email          string    `db:"email"`
	PasswordHash   string    `db:"password_hash"`
	College        string    `db:"college"`
	Branch         string    `db:"branch"`
	YearOfStudy    string    `db:"year_of_study"`
	Bio            string    `db:"bio"`
	ProfilePicture string    `db:"profile_picture"`
	CreatedAt      time.Time `db:"created_at"`
	LastLogin      time.Time `db:"last_login"`
}

func (u *User) Participant() Participant {
	return Participant{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

type Profile struct {
	User           User
	LikedQuestions []Question
	StudyMaterials []ProfileMaterial
}

var (
	QuestionRounds       = []string{"Technical", "HR", "Aptitude"}
	QuestionDifficulties = []string{"Easy", "Medium", "Hard"}
	QuestionFrequencies  = []string{"Rare", "Sometimes", "Frequently Asked"}

	MaterialCategories = []string{
		"Technical", "Aptitude", "HR", "General", "Programming", "Data Structures",
		"Algorithms", "System Design", "Database", "Networking",
	}
	MaterialFileTypes    = []string{"PDF", "Video", "Link", "Document", "Presentation"}
	MaterialDifficulties = []string{"Beginner", "Intermediate", "Advanced"}
)

// OneOf reports whether v is listed in allowed.
func OneOf(v string, allowed []string) bool {
	return slices.Contains(allowed, v)
}

type Question struct {
	ID             string    `db:"id"`
	Company        string    `db:"company"`
	Role           string    `db:"role"`
	Question       string    `db:"question"`
	Round          string    `db:"round"`
	Difficulty     string    `db:"difficulty"`
	Frequency      string    `db:"frequency"`
	FrequencyCount int       `db:"frequency_count"`
	Likes          int       `db:"likes"`
	Views          int       `db:"views"`
	PostedBy       string    `db:"posted_by"`
	CreatedAt      time.Time `db:"created_at"`
}

type QuestionSort string

const (
	SortNewest    QuestionSort = ""
	SortViews     QuestionSort = "views"
	SortLikes     QuestionSort = "likes"
	SortFrequency QuestionSort = "frequency"
)

type QuestionFilter struct {
	Company    string
	Role       string
	Difficulty string
	Frequency  string
	SortBy     QuestionSort
}

type StudyMaterial struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Category    string         `db:"category"`
	Link        string         `db:"link"`
	FileType    *string        `db:"file_type"`
	Difficulty  *string        `db:"difficulty"`
	PostedBy    string         `db:"posted_by"`
	Likes       int            `db:"likes"`
	Views       int            `db:"views"`
	Tags        pq.StringArray `db:"tags"`
	CreatedAt   time.Time      `db:"created_at"`
}

// ProfileMaterial is a personal bookmark kept on a user's profile.
type ProfileMaterial struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Link        string    `db:"link"`
	Category    string    `db:"category"`
	AddedAt     time.Time `db:"added_at"`
}

type ChatMessage struct {
	ID        string    `db:"id" json:"_id"`
	Username  string    `db:"username" json:"username"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ChatHistoryLimit caps how many messages the chat history returns.
const ChatHistoryLimit = 50
