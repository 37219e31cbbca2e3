package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/satriadjati/goshop/internal/service/search"
	"github.com/satriadjati/goshop/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

// SearchText is the Elasticsearch-backed full-text product search.
func (h *SearchHandler) SearchText(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Kata kunci pencarian harus diisi"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, products, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		c.Logger().Errorf("search error: %v", err)
		return c.JSON(http.StatusInternalServerError, Response{Status: "error", Message: "Pencarian gagal"})
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
