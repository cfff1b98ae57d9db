package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/volva-go/internal/adapters/images"
	"github.com/randomtoy/volva-go/internal/app"
	"github.com/randomtoy/volva-go/internal/domain"
)

const maxQuestionLen = 500

type Handler struct {
	svc *app.VolvaService
}

func NewHandler(svc *app.VolvaService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/runes", h.ListRunes)
	e.GET("/v1/runes/:name", h.GetRune)
	e.GET("/v1/runes/:name/image", h.GetRuneImage)
	e.GET("/v1/daily", h.GetDaily)
	e.POST("/v1/daily", h.DrawDaily)
	e.GET("/v1/spreads/:type", h.GetSpread)
	e.POST("/v1/spreads/:type", h.DrawSpread)
	e.PUT("/v1/session/credential", h.SetCredential)
	e.POST("/v1/prophecy", h.RequestProphecy)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListRunes(c echo.Context) error {
	runes := h.svc.Runes()
	out := make([]RuneResponse, len(runes))
	for i, r := range runes {
		out[i] = toRuneResponse(r)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetRune(c echo.Context) error {
	r, err := h.svc.Rune(c.Param("name"))
	if err != nil {
		return mapError(c, err)
	}

	resp := RuneDetailResponse{RuneResponse: toRuneResponse(r)}
	if rec, ok := h.svc.FullRecord(r.Name); ok {
		resp.Record = &FullRecordResponse{
			ShortDescription: rec.ShortDescription,
			LongDescription:  rec.LongDescription,
			Interpretation:   rec.Interpretation,
			Keywords:         rec.Keywords,
			SourceURL:        rec.SourceURL,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetRuneImage(c echo.Context) error {
	r, err := h.svc.Rune(c.Param("name"))
	if err != nil {
		return mapError(c, err)
	}
	if !r.HasImage {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "the rune " + r.Name + " has no image; its wisdom is text alone",
		})
	}

	size := 0
	if raw := c.QueryParam("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "size must be an integer"})
		}
		size = parsed
	}
	reversed := c.QueryParam("reversed") == "true"

	data, err := images.Render(r.Image, size, reversed)
	if err != nil {
		return mapError(c, err)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

func (h *Handler) GetDaily(c echo.Context) error {
	drawn, ok := h.svc.CurrentDaily(sessionState(c))
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no daily rune drawn yet"})
	}
	return c.JSON(http.StatusOK, h.toDailyResponse(drawn))
}

func (h *Handler) DrawDaily(c echo.Context) error {
	drawn, err := h.svc.DrawDaily(sessionState(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.toDailyResponse(drawn))
}

func (h *Handler) GetSpread(c echo.Context) error {
	st, err := domain.ParseSpreadType(c.Param("type"))
	if err != nil {
		return mapError(c, err)
	}
	spread, ok := h.svc.CurrentSpread(sessionState(c), st)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no " + string(st) + " spread drawn yet"})
	}
	return c.JSON(http.StatusOK, toSpreadResponse(spread))
}

func (h *Handler) DrawSpread(c echo.Context) error {
	st, err := domain.ParseSpreadType(c.Param("type"))
	if err != nil {
		return mapError(c, err)
	}
	spread, err := h.svc.DrawSpread(sessionState(c), st)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSpreadResponse(spread))
}

func (h *Handler) SetCredential(c echo.Context) error {
	var req CredentialRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.APIKey) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "api_key must not be empty"})
	}
	sessionState(c).SetCredential(req.APIKey)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RequestProphecy(c echo.Context) error {
	var req ProphecyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if len(req.Question) > maxQuestionLen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question must be at most 500 characters"})
	}

	p, err := h.svc.RequestProphecy(c.Request().Context(), sessionState(c), req.Question, req.DrawRune)
	if err != nil {
		return mapError(c, err)
	}

	requestID, _ := c.Get("request_id").(string)
	resp := ProphecyResponse{
		Prophecy: p.Text,
		Meta: MetaResp{
			Model:     p.Model,
			RequestID: requestID,
			LatencyMS: p.LatencyMS,
		},
	}
	if p.Rune != nil {
		dr := toDrawnRuneResponse(*p.Rune, "")
		resp.Rune = &dr
	}
	return c.JSON(http.StatusOK, resp)
}

func toRuneResponse(r domain.Rune) RuneResponse {
	return RuneResponse{
		Name:           r.Name,
		Symbol:         r.Symbol,
		Aett:           r.Aett,
		AettPosition:   r.AettPosition,
		Meaning:        r.Meaning,
		Symbolism:      r.Symbolism,
		Potential:      r.Potential,
		PracticalUse:   r.PracticalUse,
		AdditionalInfo: r.AdditionalInfo,
		HasImage:       r.HasImage,
		ImageURL:       imageURL(r),
	}
}

func toDrawnRuneResponse(dr domain.DrawnRune, positionName string) DrawnRuneResponse {
	u := imageURL(dr.Rune)
	if u != "" && dr.Reversed {
		u += "?reversed=true"
	}
	return DrawnRuneResponse{
		Name:         dr.Name,
		Position:     dr.Position,
		PositionName: positionName,
		Reversed:     dr.Reversed,
		Meaning:      dr.Meaning,
		ImageURL:     u,
	}
}

func toSpreadResponse(spread domain.Spread) SpreadResponse {
	names := spread.Type.PositionNames()
	out := make([]DrawnRuneResponse, len(spread.Runes))
	for i, dr := range spread.Runes {
		name := ""
		if names != nil && i < len(names) {
			name = names[i]
		}
		out[i] = toDrawnRuneResponse(dr, name)
	}
	return SpreadResponse{
		Spread:      string(spread.Type),
		Description: spread.Type.Description(),
		Runes:       out,
	}
}

func (h *Handler) toDailyResponse(drawn domain.DrawnRune) DailyResponse {
	resp := DailyResponse{Rune: toDrawnRuneResponse(drawn, "rune of the day")}
	if entry, ok := h.svc.DailyEntry(drawn.Name); ok {
		resp.Description = strings.Join(entry.Description, " ")
		resp.Reflection = entry.Reflection
		if entry.Task.ShortTask != "" || len(entry.Task.Prompts) > 0 {
			resp.Task = &TaskResponse{
				ShortTask:      entry.Task.ShortTask,
				TaskReflection: entry.Task.TaskReflection,
				Prompts:        entry.Task.Prompts,
			}
		}
	}
	return resp
}

func imageURL(r domain.Rune) string {
	if !r.HasImage {
		return ""
	}
	return "/v1/runes/" + url.PathEscape(r.Name) + "/image"
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrRuneNotFound), errors.Is(err, domain.ErrNoImage):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnknownSpread),
		errors.Is(err, domain.ErrInsufficientRunes),
		errors.Is(err, domain.ErrEmptyQuestion):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrMissingCredential):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "the seeress awaits your offering: set an API key for this session first",
		})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
