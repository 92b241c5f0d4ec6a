package interview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/artem13815/resumebuilder/pkg/auth"
	"github.com/artem13815/resumebuilder/pkg/llm"
	"github.com/artem13815/resumebuilder/pkg/resume"
)

// UseCase ведёт собеседование: вопросы по навыкам из резюме и оценка ответов.
type UseCase interface {
	Start(ctx context.Context, p auth.Principal, filename string, data []byte) (Session, error)
	Submit(ctx context.Context, p auth.Principal, id uuid.UUID, answers []Answer) (Session, error)
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (Session, error)
	List(ctx context.Context, p auth.Principal, limit, offset int) ([]Session, error)
}

type service struct {
	repo        Repository
	questions   llm.ChatModel
	evaluator   llm.ChatModel
	concurrency int
	log         *slog.Logger
}

// NewService wires the use case. questions may be a cached model since its
// prompts repeat per skill; evaluator sees free-form answers.
func NewService(repo Repository, questions, evaluator llm.ChatModel, concurrency int, log *slog.Logger) UseCase {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &service{
		repo:        repo,
		questions:   questions,
		evaluator:   evaluator,
		concurrency: concurrency,
		log:         log,
	}
}

func (s *service) Start(ctx context.Context, p auth.Principal, filename string, data []byte) (Session, error) {
	text, err := resume.ExtractText(filename, data)
	if err != nil {
		return Session{}, err
	}
	skills := ExtractSkills(text)
	if len(skills) == 0 {
		return Session{}, ErrNoSkills
	}

	perSkill := make([][]string, len(skills))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, skill := range skills {
		g.Go(func() error {
			qs, fallback := GenerateQuestions(gctx, s.questions, skill)
			if fallback {
				s.log.Warn("interview: using fallback questions", "skill", skill)
			}
			perSkill[i] = qs
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.New(),
		OwnerID:   p.UserID,
		Filename:  filename,
		Skills:    skills,
		Questions: []Question{},
		Status:    StatusAwaitingAnswers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, skill := range skills {
		for _, q := range perSkill[i] {
			sess.Questions = append(sess.Questions, Question{Index: len(sess.Questions), Skill: skill, Text: q})
		}
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save interview session: %w", err)
	}
	s.log.Info("interview started", "session", sess.ID, "skills", len(skills), "questions", len(sess.Questions))
	return sess, nil
}

func (s *service) Submit(ctx context.Context, p auth.Principal, id uuid.UUID, answers []Answer) (Session, error) {
	sess, err := s.Get(ctx, p, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Status == StatusEvaluated {
		return Session{}, ErrAlreadyEvaluated
	}

	// пустые ответы не оцениваются, но вопрос всё равно входит в максимум
	byIndex := map[int]string{}
	for _, a := range answers {
		if a.Index < 0 || a.Index >= len(sess.Questions) {
			return Session{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, a.Index)
		}
		if t := strings.TrimSpace(a.Text); t != "" {
			byIndex[a.Index] = t
		}
	}

	var pending []Question
	for _, q := range sess.Questions {
		if _, ok := byIndex[q.Index]; ok {
			pending = append(pending, q)
		}
	}
	evals := make([]Evaluation, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, q := range pending {
		g.Go(func() error {
			ev, err := Evaluate(gctx, s.evaluator, q.Skill, q.Text, byIndex[q.Index])
			if err != nil {
				return fmt.Errorf("question %d: %w", q.Index, err)
			}
			ev.Index = q.Index
			evals[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Session{}, err
	}

	res := Score(len(sess.Questions), evals)
	sess.Result = &res
	sess.Status = StatusEvaluated
	sess.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save interview result: %w", err)
	}
	s.log.Info("interview evaluated", "session", sess.ID, "total", res.Total, "max", res.Max, "band", res.Band)
	return sess, nil
}

func (s *service) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (Session, error) {
	if p.IsAdmin {
		return s.repo.GetAny(ctx, id)
	}
	return s.repo.GetForOwner(ctx, p.UserID, id)
}

func (s *service) List(ctx context.Context, p auth.Principal, limit, offset int) ([]Session, error) {
	if p.IsAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, p.UserID, limit, offset)
}
