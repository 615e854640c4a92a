package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/api/responses"
	"github.com/vogelpark/storefront/api/validators"
	"github.com/vogelpark/storefront/pkg/db/models"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
	"github.com/vogelpark/storefront/pkg/logger"
)

type blogStore interface {
	List(ctx context.Context) ([]models.BlogPost, error)
	Latest(ctx context.Context, limit int) ([]models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlogList serves all posts, newest first, as a bare array.
func BlogList(repo blogStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog store unavailable"))
			return
		}

		posts, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list blog posts"))
			return
		}
		responses.WriteSuccess(w, blogResponses(posts))
	}
}

// BlogLatest serves the most recent posts for the landing page.
func BlogLatest(repo blogStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog store unavailable"))
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		posts, err := repo.Latest(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list latest blog posts"))
			return
		}
		responses.WriteSuccess(w, blogResponses(posts))
	}
}

// BlogCreate publishes a post.
func BlogCreate(repo blogStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog store unavailable"))
			return
		}

		var payload blogPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post := models.BlogPost{
			Title:    payload.Title,
			Content:  payload.Content,
			ImageURL: payload.ImageURL,
			Category: payload.Category,
			Author:   payload.Author,
		}
		if err := repo.Create(r.Context(), &post); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create blog post"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newBlogResponse(post))
	}
}

// BlogUpdate applies a partial update to one post.
func BlogUpdate(repo blogStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog store unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "postId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid post id"))
			return
		}

		var payload blogUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fields := payload.fields()
		if len(fields) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
			return
		}

		if err := repo.Update(r.Context(), id, fields); err != nil {
			if err == gorm.ErrRecordNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "blog post not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update blog post"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "blog post updated")
	}
}

// BlogDelete removes one post.
func BlogDelete(repo blogStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog store unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "postId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid post id"))
			return
		}

		if err := repo.Delete(r.Context(), id); err != nil {
			if err == gorm.ErrRecordNotFound {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "blog post not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete blog post"))
			return
		}

		responses.WriteMessage(w, http.StatusOK, "blog post deleted")
	}
}

type blogPayload struct {
	Title    string  `json:"title" validate:"required"`
	Content  string  `json:"content" validate:"required"`
	ImageURL *string `json:"image_url"`
	Category *string `json:"category"`
	Author   string  `json:"author" validate:"required"`
}

type blogUpdatePayload struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
	Category *string `json:"category"`
	Author   *string `json:"author"`
}

func (p blogUpdatePayload) fields() map[string]any {
	fields := map[string]any{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Content != nil {
		fields["content"] = *p.Content
	}
	if p.ImageURL != nil {
		fields["image_url"] = *p.ImageURL
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Author != nil {
		fields["author"] = *p.Author
	}
	return fields
}

type blogResponse struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	ImageURL *string   `json:"image_url"`
	Category *string   `json:"category"`
	Author   string    `json:"author"`
	Date     time.Time `json:"date"`
}

func newBlogResponse(p models.BlogPost) blogResponse {
	return blogResponse{
		ID:       p.ID.String(),
		Title:    p.Title,
		Content:  p.Content,
		ImageURL: p.ImageURL,
		Category: p.Category,
		Author:   p.Author,
		Date:     p.Date,
	}
}

func blogResponses(posts []models.BlogPost) []blogResponse {
	out := make([]blogResponse, len(posts))
	for i, post := range posts {
		out[i] = newBlogResponse(post)
	}
	return out
}
