package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/mathdrill/internal/answer"
	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/topic"
)

type topicView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Strand      string `json:"strand"`
	StrandName  string `json:"strand_name"`
	Grade       int    `json:"grade"`
	MaxLevel    int    `json:"max_level"`
}

// problemView is a problem as sent to the learner: no answer value.
type problemView struct {
	ID         string      `json:"id"`
	TopicID    string      `json:"topic_id"`
	Level      int         `json:"level"`
	Prompt     string      `json:"prompt"`
	AnswerKind answer.Kind `json:"answer_kind"`
	Units      []string    `json:"units,omitempty"`
	Options    []string    `json:"options,omitempty"`
	Hint       string      `json:"hint"`

	UntilPromotion int `json:"until_promotion"`
}

type outcomeView struct {
	Correct     bool   `json:"correct"`
	Message     string `json:"message"`
	Submitted   string `json:"submitted"`
	Expected    string `json:"expected"`
	Change      string `json:"change"`
	Level       int    `json:"level"`
	Banner      string `json:"banner,omitempty"`
	Explanation string `json:"explanation"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	all := s.catalog.All()
	out := make([]topicView, 0, len(all))
	for _, t := range all {
		out = append(out, topicView{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Strand:      string(t.Strand),
			StrandName:  topic.StrandDisplayName(t.Strand),
			Grade:       t.Grade,
			MaxLevel:    t.Difficulty.MaxLevel,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed uint64 `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sess, err := s.reg.Create(r.Context(), req.Seed)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": sess.ID(), "seed": sess.Seed()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	var sum session.Summary
	err := s.reg.Do(r.Context(), chi.URLParam(r, "sessionID"), func(sess *session.Session) error {
		sum = sess.Summary()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sum, err := s.reg.End(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")
	var view problemView
	err := s.reg.Do(r.Context(), chi.URLParam(r, "sessionID"), func(sess *session.Session) error {
		p, err := sess.Next(r.Context(), topicID)
		if err != nil {
			return err
		}
		view = s.viewProblem(r, p)
		view.UntilPromotion = sess.UntilPromotion(topicID)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	topicID := chi.URLParam(r, "topicID")
	var (
		current *problemgen.Problem
		view    outcomeView
	)
	err := s.reg.Do(ctx, chi.URLParam(r, "sessionID"), func(sess *session.Session) error {
		current = sess.Current(topicID)
		out, err := sess.Submit(ctx, topicID, req.Answer)
		if err != nil {
			return err
		}
		view = outcomeView{
			Correct:     out.Correct,
			Submitted:   out.Submitted.String(),
			Expected:    out.Expected.String(),
			Change:      string(out.Change.Kind),
			Level:       out.Level,
			Explanation: out.Explanation,
		}
		if out.Correct {
			view.Message = i18n.T(ctx, "Correct")
		} else {
			view.Message = i18n.Td(ctx, "Incorrect", map[string]any{"Answer": out.Expected.String()})
		}
		switch out.Change.Kind {
		case difficulty.Promoted:
			view.Banner = i18n.Td(ctx, "LevelUp", map[string]any{"Level": out.Change.To})
		case difficulty.Demoted:
			view.Banner = i18n.Td(ctx, "LevelDown", map[string]any{"Level": out.Change.To})
		}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err, current)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSolution(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")
	var text string
	err := s.reg.Do(r.Context(), chi.URLParam(r, "sessionID"), func(sess *session.Session) error {
		var err error
		text, err = sess.Reveal(r.Context(), topicID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"title":    i18n.T(r.Context(), "Solution"),
		"solution": text,
	})
}

func (s *Server) viewProblem(r *http.Request, p *problemgen.Problem) problemView {
	v := problemView{
		ID:         p.ID,
		TopicID:    p.TopicID,
		Level:      p.Level,
		Prompt:     p.Prompt,
		AnswerKind: p.Answer.Kind,
		Hint:       i18n.FormatHint(r.Context(), p.Answer),
	}
	switch p.Answer.Kind {
	case answer.KindComposite:
		v.Units = p.Answer.Units
	case answer.KindChoice:
		v.Options = p.Answer.Options
	}
	return v
}
