package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/linkai-dev/linkai/internal/search"
)

// PatentSearcher runs a filtered, paged patent search.
type PatentSearcher interface {
	Search(q search.Query) (search.Result, error)
}

type PatentsHandler struct {
	Search PatentSearcher
}

func (h *PatentsHandler) Register(g *echo.Group) {
	g.GET("/patents", h.search)
}

func (h *PatentsHandler) search(c echo.Context) error {
	q := search.Query{
		TechQ:     c.QueryParam("tech_q"),
		ProdQ:     c.QueryParam("prod_q"),
		Inventor:  c.QueryParam("inventor"),
		Applicant: c.QueryParam("applicant"),
		AppNum:    c.QueryParam("app_num"),
	}
	var err error
	if q.Page, err = intParam(c, "page", 1); err != nil {
		return err
	}
	if q.Limit, err = intParam(c, "limit", 20); err != nil {
		return err
	}

	res, err := h.Search.Search(q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}
