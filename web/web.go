// Package web shows a game that is being played somewhere else. It only ever
// reads snapshots out of a Box, and never touches the game itself.
package web

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Run serves the view on addr until ctx is done.
func Run(ctx context.Context, addr string, box *Box) error {
	log := log.With().Str("gw", "web").Logger()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.Info().Msgf("web listening on http://%v", ln.Addr())

	s := &http.Server{
		Handler:     NewHandler(box, log),
		ReadTimeout: time.Second * 10,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		ctx1, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Shutdown(ctx1)
	}()

	err = s.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// NewHandler makes the routes:
//
//	GET /api/game      latest snapshot as JSON
//	GET /api/game.png  latest snapshot as a picture
//	GET /ws            websocket, sends each new snapshot as JSON
func NewHandler(box *Box, log zerolog.Logger) http.Handler {
	h := &handler{
		box: box,
		log: log,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	a := r.Group("/api")
	a.GET("/game", h.getGame)
	a.GET("/game.png", h.getImage)
	r.GET("/ws", h.serveWS)

	return r
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

type handler struct {
	box *Box
	log zerolog.Logger
}

func (h *handler) getGame(c *gin.Context) {
	snap, version := h.box.Get()
	if version == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no game yet"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

func (h *handler) getImage(c *gin.Context) {
	snap, version := h.box.Get()
	if version == 0 {
		c.String(http.StatusNotFound, "no game yet")
		return
	}

	var buf bytes.Buffer
	err := snap.DrawPNG(&buf)
	if err != nil {
		h.log.Error().Err(err).Msg("draw error")
		c.String(http.StatusInternalServerError, "error: %v", err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *handler) serveWS(c *gin.Context) {
	addr := c.Request.RemoteAddr

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Info().Err(err).Msg("websocket accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "the sky is falling")

	h.log.Info().Msgf("viewer connected from %s", addr)

	// nothing is read from viewers, this only notices them going
	ctx := conn.CloseRead(c.Request.Context())

	var seen uint64
	for {
		snap, version := h.box.Get()
		if version != seen {
			seen = version
			err := wsjson.Write(ctx, conn, snap)
			if err != nil {
				h.log.Info().Err(err).Msgf("send error to %s", addr)
				return
			}
		}

		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case _, ok := <-h.box.Listen(seen):
			if !ok {
				conn.Close(websocket.StatusGoingAway, "game over")
				return
			}
		}
	}
}
