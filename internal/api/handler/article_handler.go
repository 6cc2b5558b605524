package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/blogcms/admin-api/internal/api/metrics"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// ArticleHandler exposes the article CRUD endpoints. Reads are public,
// writes require an authenticated caller (enforced in the router).
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List returns articles, newest first.
//
// @Summary      List articles
// @Tags         articles
// @Produce      json
// @Param        published  query     bool   false  "only published articles"
// @Param        author     query     int    false  "filter by author id"
// @Success      200        {object}  listArticlesResponse
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	var filter ports.ListArticlesFilter
	if v := c.QueryParam("published"); v != "" {
		published, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid published filter")
		}
		filter.PublishedOnly = published
	}
	if v := c.QueryParam("author"); v != "" {
		authorID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid author filter")
		}
		filter.AuthorID = authorID
	}

	details, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(details))
}

// Get returns a single article by id.
//
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "article id"
// @Success      200  {object}  articleResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(detail))
}

// Create persists a new article authored by the current identity.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article  body      createArticleRequest  true  "Article"
// @Success      201      {object}  articleResponse
// @Failure      400      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	detail, err := h.service.Create(c.Request().Context(), actor(c), ports.CreateArticleInput{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}

	metrics.ArticleWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toArticleResponse(detail))
}

// Patch applies a partial update; fields absent from the body are untouched.
//
// @Summary      Partially update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "article id"
// @Param        article  body      patchArticleRequest  true  "Fields to update"
// @Success      200      {object}  articleResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/articles/{id} [patch]
func (h *ArticleHandler) Patch(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	var req patchArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	detail, err := h.service.Update(c.Request().Context(), actor(c), id, ports.UpdateArticleInput{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}

	metrics.ArticleWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toArticleResponse(detail))
}

// Put replaces title, content and published flag wholesale.
//
// @Summary      Replace an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "article id"
// @Param        article  body      createArticleRequest  true  "Full article"
// @Success      200      {object}  articleResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Put(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	detail, err := h.service.Replace(c.Request().Context(), actor(c), id, ports.CreateArticleInput{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}

	metrics.ArticleWritesTotal.WithLabelValues("replace").Inc()
	return c.JSON(http.StatusOK, toArticleResponse(detail))
}

// Delete removes an article. Admin-only, enforced in the router.
//
// @Summary      Delete an article
// @Tags         articles
// @Param        id  path  int  true  "article id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor(c), id); err != nil {
		return err
	}
	metrics.ArticleWritesTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// articleID parses the :id path parameter.
func articleID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid article id")
	}
	return id, nil
}
