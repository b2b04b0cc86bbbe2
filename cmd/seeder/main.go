package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/config"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/repository"
	"github.com/YusovID/campus-prep/internal/repository/postgres"
	"github.com/YusovID/campus-prep/pkg/logger/sl"
	"github.com/YusovID/campus-prep/pkg/logger/slogpretty"
	"github.com/google/uuid"
)

func main() {
	requester := flag.String("requester", os.Getenv("SEED_REQUESTER_EMAIL"),
		"email of an existing user who becomes the requester of the sample interview requests")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, strings.ToLower(strings.TrimSpace(*requester))); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, requesterEmail string) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	db, err := postgres.NewDB(ctx, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.DB().Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	now := time.Now().UTC()

	materials := postgres.NewStudyMaterialRepository(db.DB(), log)
	if err := seedMaterials(ctx, materials, now); err != nil {
		return err
	}
	log.Info("added sample study materials", slog.Int("count", len(sampleMaterials)))

	if requesterEmail == "" {
		log.Warn("no requester given, skipping sample interview requests")
		return nil
	}

	users := postgres.NewUserRepository(db.DB(), log)
	user, err := users.GetByEmail(ctx, requesterEmail)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("no user with email %q, sign up first", requesterEmail)
	}
	if err != nil {
		return fmt.Errorf("failed to look up requester: %w", err)
	}

	requests := postgres.NewInterviewRequestRepository(db.DB(), log)
	if err := seedInterviewRequests(ctx, requests, user.ID, now); err != nil {
		return err
	}
	log.Info("added sample interview requests",
		slog.Int("count", len(sampleInterviews)),
		slog.String("requester", user.Handle),
	)

	return nil
}

type sampleMaterial struct {
	title, description, category, link, difficulty string
	tags                                           []string
	likes, views                                   int
}

var sampleMaterials = []sampleMaterial{
	{
		title:       "Data Structures and Algorithms",
		description: "Comprehensive guide to DSA concepts with examples and practice problems",
		category:    "Data Structures",
		link:        "https://www.geeksforgeeks.org/data-structures/",
		difficulty:  "Intermediate",
		tags:        []string{"algorithms", "data-structures", "programming"},
		likes:       15, views: 120,
	},
	{
		title:       "System Design Interview Guide",
		description: "Complete guide to system design interviews with real-world examples",
		category:    "Technical",
		link:        "https://github.com/donnemartin/system-design-primer",
		difficulty:  "Advanced",
		tags:        []string{"system-design", "architecture", "scalability"},
		likes:       23, views: 89,
	},
	{
		title:       "Aptitude Test Preparation",
		description: "Practice questions and tips for aptitude tests in placement interviews",
		category:    "Aptitude",
		link:        "https://www.indiabix.com/aptitude/questions-and-answers/",
		difficulty:  "Beginner",
		tags:        []string{"aptitude", "reasoning", "placement"},
		likes:       8, views: 156,
	},
	{
		title:       "HR Interview Questions",
		description: "Common HR interview questions and best practices for answering them",
		category:    "HR",
		link:        "https://www.indeed.com/career-advice/interviewing/hr-interview-questions",
		difficulty:  "Beginner",
		tags:        []string{"hr", "interview", "soft-skills"},
		likes:       12, views: 203,
	},
	{
		title:       "JavaScript Programming Guide",
		description: "Modern JavaScript concepts and ES6+ features for web development",
		category:    "Programming",
		link:        "https://developer.mozilla.org/en-US/docs/Web/JavaScript",
		difficulty:  "Intermediate",
		tags:        []string{"javascript", "programming", "web-development"},
		likes:       19, views: 167,
	},
	{
		title:       "Database Design Principles",
		description: "Learn database design, normalization, and SQL optimization techniques",
		category:    "Technical",
		link:        "https://www.w3schools.com/sql/",
		difficulty:  "Intermediate",
		tags:        []string{"database", "sql", "design"},
		likes:       14, views: 134,
	},
	{
		title:       "Machine Learning Basics",
		description: "Introduction to machine learning concepts and algorithms",
		category:    "Technical",
		link:        "https://www.coursera.org/learn/machine-learning",
		difficulty:  "Advanced",
		tags:        []string{"machine-learning", "ai", "algorithms"},
		likes:       27, views: 98,
	},
	{
		title:       "Behavioral Interview Questions",
		description: "STAR method and behavioral interview question examples",
		category:    "HR",
		link:        "https://www.themuse.com/advice/behavioral-interview-questions-answers-examples",
		difficulty:  "Beginner",
		tags:        []string{"behavioral", "interview", "star-method"},
		likes:       16, views: 145,
	},
}

func seedMaterials(ctx context.Context, repo repository.StudyMaterialRepository, now time.Time) error {
	fileType := "Link"

	for _, s := range sampleMaterials {
		difficulty := s.difficulty
		m := &domain.StudyMaterial{
			ID:          uuid.NewString(),
			Title:       s.title,
			Description: s.description,
			Category:    s.category,
			Link:        s.link,
			FileType:    &fileType,
			Difficulty:  &difficulty,
			PostedBy:    uuid.NewString(),
			Likes:       s.likes,
			Views:       s.views,
			Tags:        s.tags,
			CreatedAt:   now,
		}

		if err := repo.Create(ctx, m); err != nil {
			return fmt.Errorf("failed to add %q: %w", s.title, err)
		}
	}

	return nil
}

type sampleInterview struct {
	role          domain.Role
	interviewType domain.InterviewType
	daysAhead     int
	duration      int
	notes         string
}

var sampleInterviews = []sampleInterview{
	{domain.RoleSDE, domain.InterviewTechnical, 2, 30, "Focus on data structures and algorithms, especially tree and graph problems."},
	{domain.RoleAnalyst, domain.InterviewHR, 3, 45, "Would like to practice behavioral questions and case studies."},
	{domain.RoleDataScientist, domain.InterviewMixed, 1, 45, "Focus on machine learning concepts, statistics, and system design."},
	{domain.RoleProductManager, domain.InterviewHR, 4, 30, "Practice product strategy questions and user experience scenarios."},
	{domain.RoleFrontend, domain.InterviewTechnical, 5, 30, "Focus on JavaScript, React, and frontend system design."},
}

func seedInterviewRequests(ctx context.Context, repo repository.InterviewRequestRepository, requesterID string, now time.Time) error {
	for _, s := range sampleInterviews {
		req := &domain.InterviewRequest{
			ID:            uuid.NewString(),
			RequesterID:   requesterID,
			Role:          s.role,
			InterviewType: s.interviewType,
			PreferredDate: now.AddDate(0, 0, s.daysAhead),
			Duration:      s.duration,
			Status:        domain.StatusPending,
			Notes:         s.notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := repo.Create(ctx, req); err != nil {
			return fmt.Errorf("failed to add %s request: %w", s.role, err)
		}
	}

	return nil
}
