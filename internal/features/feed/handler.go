package feed

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/features/requests"
	"github.com/servepupil/api/internal/pkg/response"
	"github.com/servepupil/api/internal/pkg/treestore"
)

// Handler handles the personal feed endpoints
type Handler struct {
	store treestore.Store
}

func NewHandler(store treestore.Store) *Handler {
	return &Handler{store: store}
}

const readyTimeout = 10 * time.Second

// PersonalFeed godoc
// @Summary Personal feed snapshot
// @Description Returns the requests of everyone the caller follows, newest first.
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]requests.RequestResponse}
// @Failure 502 {object} response.APIResponse
// @Router /feed/personal [get]
func (h *Handler) PersonalFeed(c *gin.Context) {
	uid := c.GetString("uid")
	ctx := c.Request.Context()

	agg, err := NewAggregator(ctx, h.store, uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer agg.Close()

	waitCtx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	if err := agg.WaitReady(waitCtx); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, toResponses(agg.Snapshot(), uid))
}

// PersonalFeedLive godoc
// @Summary Personal feed as a server-sent event stream
// @Description Emits a "feed" event with the full snapshot on connect and after every change, until the client disconnects.
// @Tags feed
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "SSE stream"
// @Failure 502 {object} response.APIResponse
// @Router /feed/personal/live [get]
func (h *Handler) PersonalFeedLive(c *gin.Context) {
	uid := c.GetString("uid")
	ctx := c.Request.Context()

	agg, err := NewAggregator(ctx, h.store, uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer agg.Close()

	waitCtx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	if err := agg.WaitReady(waitCtx); err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("feed", toResponses(agg.Snapshot(), uid))
	c.Writer.Flush()

	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-agg.Changes():
			c.SSEvent("feed", toResponses(agg.Snapshot(), uid))
			return true
		case <-keepAlive.C:
			c.SSEvent("keep-alive", "")
			return true
		}
	})
}

func toResponses(reqs []*requests.Request, viewerUID string) []requests.RequestResponse {
	out := make([]requests.RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, req.ToResponse(viewerUID))
	}
	return out
}
