package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-cardgen/pkg/logging"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/platform"
	"github.com/goliatone/go-cardgen/pkg/record"
	"github.com/goliatone/go-cardgen/pkg/theme"
)

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type renderResponse struct {
	HTML       string                     `json:"html"`
	Context    orchestrator.RenderContext `json:"context"`
	Warnings   []record.Warning           `json:"warnings"`
	Unresolved []string                   `json:"unresolved"`
	Filename   string                     `json:"filename"`
	DurationMS int64                      `json:"durationMs"`
}

// handleRender renders the card. GET reads record fields from the query
// string; POST accepts a JSON object or form values. JSON output is returned
// for format=json or an Accept header asking for it, HTML otherwise.
func (s *Server) handleRender(c echo.Context) error {
	raw, err := readRecord(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := s.orch.Render(c.Request().Context(), orchestrator.Request{
		Platform: c.Param("platform"),
		Template: c.Param("template"),
		Record:   raw,
		Variant:  c.QueryParam("variant"),
	})
	if err != nil {
		return renderError(err)
	}

	filename := result.Context.Filename(c.QueryParam("ext"))
	if wantsJSON(c) {
		warnings := result.Warnings
		if warnings == nil {
			warnings = []record.Warning{}
		}
		unresolved := result.Unresolved
		if unresolved == nil {
			unresolved = []string{}
		}
		return c.JSON(http.StatusOK, renderResponse{
			HTML:       result.HTML,
			Context:    result.Context,
			Warnings:   warnings,
			Unresolved: unresolved,
			Filename:   filename,
			DurationMS: result.Duration.Milliseconds(),
		})
	}

	h := c.Response().Header()
	h.Set("X-Cardgen-Width", strconv.Itoa(result.Context.Size.Width))
	h.Set("X-Cardgen-Height", strconv.Itoa(result.Context.Size.Height))
	h.Set("X-Cardgen-Fallback", strconv.FormatBool(result.Context.Fallback))
	h.Set("X-Cardgen-Filename", filename)
	h.Set("X-Cardgen-Warnings", strconv.Itoa(len(result.Warnings)))
	return c.HTML(http.StatusOK, result.HTML)
}

func readRecord(c echo.Context) (record.Raw, error) {
	req := c.Request()
	if req.Method == http.MethodGet {
		return record.FromValues(c.QueryParams()), nil
	}
	ctype := req.Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationForm) || strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		form, err := c.FormParams()
		if err != nil {
			return nil, err
		}
		return record.FromValues(form), nil
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	return record.FromJSON(body)
}

func wantsJSON(c echo.Context) bool {
	if strings.EqualFold(c.QueryParam("format"), "json") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

func renderError(err error) error {
	var verr *platform.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, verr.Error()).SetInternal(err)
	}
	return err
}

func (s *Server) handleContext(c echo.Context) error {
	rc, ok := s.orch.CurrentContext()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no render yet")
	}
	return c.JSON(http.StatusOK, rc)
}

func (s *Server) handlePlatforms(c echo.Context) error {
	return c.JSON(http.StatusOK, s.orch.Catalog().All())
}

func (s *Server) handleDimensions(c echo.Context) error {
	p, t := c.Param("platform"), c.Param("template")
	if _, err := s.orch.PlatformDimensions(p, t); err != nil {
		return renderError(err)
	}
	return c.JSON(http.StatusOK, s.orch.Catalog().Describe(p, t))
}

type themeList struct {
	Default string   `json:"default"`
	Themes  []string `json:"themes"`
}

func (s *Server) handleThemes(c echo.Context) error {
	themes := s.orch.Themes()
	return c.JSON(http.StatusOK, themeList{Default: themes.DefaultName(), Themes: themes.Names()})
}

func (s *Server) handleThemeExport(c echo.Context) error {
	data, err := s.orch.Themes().Export(c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSONBlob(http.StatusOK, data)
}

// handleThemeVariables returns the CSS custom properties of a theme as JSON,
// or as a :root stylesheet for format=css.
func (s *Server) handleThemeVariables(c echo.Context) error {
	themes := s.orch.Themes()
	name := c.Param("name")
	if !themes.Has(name) {
		return echo.NewHTTPError(http.StatusNotFound, "theme "+strconv.Quote(name)+" not registered")
	}
	vars := themes.Variables(name)
	if strings.EqualFold(c.QueryParam("format"), "css") {
		return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(theme.Stylesheet(vars)+"\n"))
	}
	return c.JSON(http.StatusOK, vars)
}

// handleThemeImport registers a JSON or YAML theme document. The name query
// parameter names documents that carry none.
func (s *Server) handleThemeImport(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	name, err := s.orch.Themes().Import(body, c.QueryParam("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	s.logger.Info("theme imported", logging.String("theme", name))
	return c.JSON(http.StatusCreated, map[string]string{"name": name})
}

func (s *Server) handleCacheStats(c echo.Context) error {
	stats := s.orch.CacheStats()
	if stats.Keys == nil {
		stats.Keys = []string{}
	}
	return c.JSON(http.StatusOK, struct {
		Entries int      `json:"entries"`
		Bytes   int      `json:"bytes"`
		Keys    []string `json:"keys"`
		Summary string   `json:"summary"`
	}{stats.Entries, stats.Bytes, stats.Keys, stats.String()})
}

func (s *Server) handleCacheClear(c echo.Context) error {
	s.orch.ClearCache()
	return c.NoContent(http.StatusNoContent)
}
