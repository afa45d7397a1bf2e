package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/naka-gawa/devfolio/internal/links"
)

// LinksResponse is the body of GET /v1/links.
type LinksResponse struct {
	Owner  links.Identity     `json:"owner"`
	Social []links.SocialLink `json:"social"`
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// health handles GET /v1/health
func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// getView handles GET /v1/view. The fetch state travels in the body, so
// loading and error states are still 200 responses.
func (s *Server) getView(c echo.Context) error {
	return c.JSON(http.StatusOK, s.holder.Snapshot())
}

// refreshView handles POST /v1/view/refresh
func (s *Server) refreshView(c echo.Context) error {
	snapshot, ran := s.holder.TryRefresh(c.Request().Context())
	if !ran {
		return c.JSON(http.StatusConflict, errorBody("refresh already in progress"))
	}
	return c.JSON(http.StatusOK, snapshot)
}

// listLinks handles GET /v1/links
func (s *Server) listLinks(c echo.Context) error {
	return c.JSON(http.StatusOK, LinksResponse{Owner: links.Owner, Social: links.Social})
}

// openLink handles POST /v1/links/:platform/open
func (s *Server) openLink(c echo.Context) error {
	link, err := links.Lookup(c.Param("platform"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody(err.Error()))
	}
	s.launcher.Open(link.URL)
	return c.NoContent(http.StatusAccepted)
}
