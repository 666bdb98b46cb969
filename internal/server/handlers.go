package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/qingka/internal/assistant"
	"github.com/julianstephens/qingka/internal/feed"
	"github.com/julianstephens/qingka/internal/knowledge"
	"github.com/julianstephens/qingka/internal/milestone"
	"github.com/julianstephens/qingka/internal/models"
)

type postRequest struct {
	Author     string   `json:"author"`
	Content    string   `json:"content"`
	FullBody   string   `json:"fullBody"`
	Tags       []string `json:"tags"`
	CoverEmoji string   `json:"coverEmoji"`
}

// milestoneView adds the computed day count to a stored event.
type milestoneView struct {
	models.DaysMatterEvent
	Days int `json:"days"`
}

type contextView struct {
	Context string `json:"context"`
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewSuccessResponse(feed.Categories()))
}

func (s *Server) listKnowledgeCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewSuccessResponse(knowledge.Categories()))
}

func (s *Server) getKnowledgeCategory(w http.ResponseWriter, r *http.Request) {
	c, err := knowledge.Lookup(chi.URLParam(r, "categoryId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(c))
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewSuccessResponse(knowledge.Articles(r.URL.Query().Get("cancer"))))
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.deps.Feed.List(r.URL.Query().Get("tag"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(posts))
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	post, err := s.deps.Feed.Create(feed.Draft{
		Author:     req.Author,
		Content:    req.Content,
		FullBody:   req.FullBody,
		Tags:       req.Tags,
		CoverEmoji: req.CoverEmoji,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewSuccessResponse(post))
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.deps.Feed.Get(chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(post))
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Feed.Delete(chi.URLParam(r, "postId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) likePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.deps.Feed.ToggleLike(chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(post))
}

func (s *Server) favoritePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.deps.Feed.ToggleFavorite(chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(post))
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Profiles.Load(chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(p))
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var p models.UserProfile
	if err := decodeBody(r, &p); err != nil {
		writeError(w, err)
		return
	}
	if err := s.deps.Profiles.Save(chi.URLParam(r, "userId"), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(p))
}

func (s *Server) resetProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Profiles.Reset(chi.URLParam(r, "userId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listMilestones(w http.ResponseWriter, r *http.Request) {
	events, err := s.deps.Milestones.List(chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	today := s.deps.Now()
	views := make([]milestoneView, 0, len(events))
	for _, e := range events {
		views = append(views, milestoneView{DaysMatterEvent: e, Days: milestone.DisplayDays(e, today)})
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(views))
}

func (s *Server) createMilestone(w http.ResponseWriter, r *http.Request) {
	var e models.DaysMatterEvent
	if err := decodeBody(r, &e); err != nil {
		writeError(w, err)
		return
	}
	created, err := s.deps.Milestones.Create(chi.URLParam(r, "userId"), e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewSuccessResponse(milestoneView{
		DaysMatterEvent: created,
		Days:            milestone.DisplayDays(created, s.deps.Now()),
	}))
}

func (s *Server) deleteMilestone(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Milestones.Delete(chi.URLParam(r, "userId"), chi.URLParam(r, "eventId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.deps.Assistant.History(chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(history))
}

func (s *Server) appendHistory(w http.ResponseWriter, r *http.Request) {
	var msg models.ChatMessage
	if err := decodeBody(r, &msg); err != nil {
		writeError(w, err)
		return
	}
	stored, err := s.deps.Assistant.Append(chi.URLParam(r, "userId"), msg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewSuccessResponse(stored))
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Assistant.Clear(chi.URLParam(r, "userId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getContext(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	p, err := s.deps.Profiles.Load(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	history, err := s.deps.Assistant.History(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	category, err := knowledge.AssistantCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewSuccessResponse(contextView{Context: assistant.Context(p, history, category)}))
}
