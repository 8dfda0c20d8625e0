package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"recovery_notification_engine/internal/domain/checkin"
	"recovery_notification_engine/internal/domain/post"
)

// ModerationTrigger processes a post-creation event.
type ModerationTrigger interface {
	ProcessNewPost(ctx context.Context, p *post.Post) error
}

// CrisisTrigger processes a check-in-creation event.
type CrisisTrigger interface {
	ProcessNewCheckin(ctx context.Context, c *checkin.Checkin) error
}

type eventHandlers struct {
	moderation ModerationTrigger
	crisis     CrisisTrigger
	logger     *logrus.Logger
}

type postCreatedPayload struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type checkinCreatedPayload struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Mood             string    `json:"mood"`
	CravingIntensity int       `json:"craving_intensity"`
	CreatedAt        time.Time `json:"created_at"`
}

func (h *eventHandlers) handlePostCreated(w http.ResponseWriter, r *http.Request) {
	var payload postCreatedPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid event payload", http.StatusBadRequest)
		return
	}
	if payload.ID == 0 {
		http.Error(w, "missing post id", http.StatusBadRequest)
		return
	}

	p := &post.Post{
		ID:        payload.ID,
		AuthorID:  payload.AuthorID,
		Title:     payload.Title,
		Body:      payload.Body,
		CreatedAt: payload.CreatedAt,
	}
	if err := h.moderation.ProcessNewPost(r.Context(), p); err != nil {
		h.logger.Errorf("Moderation trigger failed for post %d: %v", p.ID, err)
		http.Error(w, "moderation trigger failed", http.StatusInternalServerError)
		return
	}
	writeAccepted(w)
}

func (h *eventHandlers) handleCheckinCreated(w http.ResponseWriter, r *http.Request) {
	var payload checkinCreatedPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid event payload", http.StatusBadRequest)
		return
	}
	if payload.ID == 0 {
		http.Error(w, "missing check-in id", http.StatusBadRequest)
		return
	}

	c := &checkin.Checkin{
		ID:               payload.ID,
		UserID:           payload.UserID,
		Mood:             checkin.Mood(payload.Mood),
		CravingIntensity: payload.CravingIntensity,
		CreatedAt:        payload.CreatedAt,
	}
	if err := h.crisis.ProcessNewCheckin(r.Context(), c); err != nil {
		h.logger.Errorf("Crisis trigger failed for check-in %d: %v", c.ID, err)
		http.Error(w, "crisis trigger failed", http.StatusInternalServerError)
		return
	}
	writeAccepted(w)
}

func writeAccepted(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}
