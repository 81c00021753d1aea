package services

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
	}
}

// Overview counts over every collection. It never writes.
func (s *dashboardService) Overview(ctx context.Context) *models.DashboardOverview {
	users := s.repo.User().All(ctx)
	notes := s.repo.Note().All(ctx)
	quizzes := s.repo.Quiz().All(ctx)
	submissions := s.repo.Submission().All(ctx)

	overview := &models.DashboardOverview{
		Notes:           len(notes),
		Quizzes:         len(quizzes),
		Assignments:     len(s.repo.Assignment().All(ctx)),
		Papers:          []models.PaperStats{},
		StudentActivity: []models.StudentStats{},
	}

	papers := make(map[string]*models.PaperStats)
	paper := func(name string) *models.PaperStats {
		p, ok := papers[name]
		if !ok {
			p = &models.PaperStats{Paper: name}
			papers[name] = p
		}
		return p
	}

	students := make(map[string]*models.StudentStats)
	var order []string
	student := func(email string) *models.StudentStats {
		key := strings.ToLower(email)
		st, ok := students[key]
		if !ok {
			st = &models.StudentStats{Email: email}
			students[key] = st
			order = append(order, key)
		}
		return st
	}

	for _, u := range users {
		if u.IsAdmin() {
			overview.Admins++
			continue
		}
		overview.Students++
		student(u.Email)
	}
	for _, n := range notes {
		paper(n.Paper).Notes++
	}
	for _, q := range quizzes {
		paper(q.Paper).Questions++
	}

	for _, sub := range submissions {
		st := student(sub.StudentEmail)
		if sub.Kind() == models.SubmissionAssignment {
			overview.AssignmentSubmissions++
			st.AssignmentSubmissions++
			continue
		}

		overview.QuizSubmissions++
		st.QuizAttempts++
		p := paper(sub.Paper)
		p.Answers++
		if sub.IsCorrect() {
			overview.CorrectAnswers++
			st.CorrectAnswers++
			p.Correct++
		}
	}

	if overview.QuizSubmissions > 0 {
		accuracy := float64(overview.CorrectAnswers) / float64(overview.QuizSubmissions) * 100
		overview.Accuracy = math.Round(accuracy*10) / 10
	}

	for _, p := range papers {
		overview.Papers = append(overview.Papers, *p)
	}
	sort.Slice(overview.Papers, func(i, j int) bool {
		return overview.Papers[i].Paper < overview.Papers[j].Paper
	})

	for _, key := range order {
		overview.StudentActivity = append(overview.StudentActivity, *students[key])
	}

	s.logger.DebugContext(ctx, "Dashboard overview computed",
		"users", len(users),
		"submissions", len(submissions))
	return overview
}
