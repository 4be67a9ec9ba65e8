package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation-engine/internal/engine"
	"github.com/iliyamo/hotel-reservation-engine/internal/model"
	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
)

// BlockHandler exposes the room block endpoints.
type BlockHandler struct {
	Engine *engine.Engine
}

func NewBlockHandler(e *engine.Engine) *BlockHandler { return &BlockHandler{Engine: e} }

type createBlockReq struct {
	Reference  string `json:"reference"` // optional idempotency key
	RoomTypeID string `json:"room_type_id"`
	Date       string `json:"date"`
	Rooms      int    `json:"rooms"`
	BlockType  string `json:"block_type"`
	Reason     string `json:"reason"`
	ExpiresAt  string `json:"expires_at"` // optional RFC3339 timestamp
	Notes      string `json:"notes"`
}

type blockResp struct {
	Reference  string `json:"reference"`
	PropertyID string `json:"property_id"`
	RoomTypeID string `json:"room_type_id"`
	Date       string `json:"date"`
	Rooms      int    `json:"rooms"`
	BlockType  string `json:"block_type"`
	Reason     string `json:"reason,omitempty"`
	BlockedBy  string `json:"blocked_by,omitempty"`
	Status     string `json:"status"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func toBlockResp(b model.RoomBlock) blockResp {
	resp := blockResp{
		Reference:  b.Reference,
		PropertyID: b.PropertyID,
		RoomTypeID: b.RoomTypeID,
		Date:       b.BlockDate.Format("2006-01-02"),
		Rooms:      b.RoomsBlocked,
		BlockType:  b.BlockType,
		Reason:     b.BlockReason,
		BlockedBy:  b.BlockedBy,
		Status:     b.Status,
		Notes:      b.Notes,
	}
	if b.ExpiresAt != nil {
		resp.ExpiresAt = b.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// Create handles POST /v1/properties/:property_id/blocks.
func (h *BlockHandler) Create(c echo.Context) error {
	var req createBlockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, err := engine.ParseDate(req.Date)
	if err != nil {
		return writeEngineError(c, err)
	}
	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		t, perr := time.Parse(time.RFC3339, req.ExpiresAt)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "expires_at must be RFC3339"})
		}
		u := t.UTC()
		expiresAt = &u
	}

	// Record who created the block from the JWT identity.
	blockedBy := ""
	if uid := c.Get("user_id"); uid != nil {
		blockedBy = fmt.Sprintf("user:%v", uid)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Engine.CreateBlock(ctx, engine.BlockInput{
		Reference:  req.Reference,
		PropertyID: c.Param("property_id"),
		RoomTypeID: req.RoomTypeID,
		Date:       date,
		Rooms:      req.Rooms,
		BlockType:  req.BlockType,
		Reason:     req.Reason,
		BlockedBy:  blockedBy,
		ExpiresAt:  expiresAt,
		Notes:      req.Notes,
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, toBlockResp(b))
}

// Get handles GET /v1/blocks/:reference.
func (h *BlockHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Engine.GetBlock(ctx, c.Param("reference"))
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, toBlockResp(b))
}

// List handles GET /v1/properties/:property_id/blocks with optional
// ?room_type_id=&status=&date_from=&date_to= filters.
func (h *BlockHandler) List(c echo.Context) error {
	f := repository.BlockFilter{
		PropertyID: c.Param("property_id"),
		RoomTypeID: c.QueryParam("room_type_id"),
		Status:     c.QueryParam("status"),
		Limit:      atoiDefault(c.QueryParam("limit"), 50),
		Offset:     atoiDefault(c.QueryParam("offset"), 0),
	}
	if from := c.QueryParam("date_from"); from != "" {
		d, err := engine.ParseDate(from)
		if err != nil {
			return writeEngineError(c, err)
		}
		f.DateFrom = d
	}
	if to := c.QueryParam("date_to"); to != "" {
		d, err := engine.ParseDate(to)
		if err != nil {
			return writeEngineError(c, err)
		}
		f.DateTo = d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	blocks, err := h.Engine.ListBlocks(ctx, f)
	if err != nil {
		return writeEngineError(c, err)
	}
	out := make([]blockResp, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toBlockResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"blocks": out})
}

// Release handles POST /v1/blocks/:reference/release.
func (h *BlockHandler) Release(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Engine.ReleaseBlock(ctx, c.Param("reference"))
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, toBlockResp(b))
}
