package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// statusPayload is what both /api/status and the websocket push carry.
type statusPayload struct {
	Snapshot      SensorSnapshot `json:"snapshot"`
	Status        Status         `json:"status"`
	MaxPowerLimit string         `json:"max_power_limit"`
}

// Hub tracks connected panel pages and fans snapshots out to them.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast writes the payload to every connected page, dropping
// connections that fail.
func (h *Hub) Broadcast(payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(payload); err != nil {
			logWarnModule("server", "Websocket write failed, dropping client: %v", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

// PanelServer is the thin presentation layer: one embedded page, a status
// endpoint, a mode endpoint and a websocket feed on the sampling cadence.
type PanelServer struct {
	echo       *echo.Echo
	controller *Controller
	hub        *Hub
	upgrader   websocket.Upgrader
}

func NewPanelServer(controller *Controller) *PanelServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &PanelServer{
		echo:       e,
		controller: controller,
		hub:        NewHub(),
		upgrader: websocket.Upgrader{
			// The panel only listens on loopback
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	e.GET("/", s.handleIndex)
	e.GET("/api/status", s.handleStatus)
	e.POST("/api/mode/:name", s.handleSetMode)
	e.GET("/ws", s.handleWebsocket)

	return s
}

func (s *PanelServer) payload() statusPayload {
	return statusPayload{
		Snapshot:      s.controller.Snapshot(),
		Status:        s.controller.Status(),
		MaxPowerLimit: s.controller.MaxPowerLimitText(),
	}
}

// PushSnapshot delivers a fresh snapshot to all connected pages. Wired as
// the sampler's per-tick callback.
func (s *PanelServer) PushSnapshot(snapshot SensorSnapshot) {
	s.controller.UpdateSnapshot(snapshot)
	s.hub.Broadcast(s.payload())
}

func (s *PanelServer) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, panelPage)
}

func (s *PanelServer) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.payload())
}

func (s *PanelServer) handleSetMode(c echo.Context) error {
	name := c.Param("name")
	if _, known := modeLabels[name]; !known {
		return c.JSON(http.StatusBadRequest, Status{
			Level: StatusError,
			Text:  "Unknown mode: " + name,
		})
	}
	return c.JSON(http.StatusOK, s.controller.SetMode(name))
}

func (s *PanelServer) handleWebsocket(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	// Greet before registering: once the connection is in the hub, only
	// Broadcast may write to it, and gorilla forbids concurrent writers.
	if err := conn.WriteJSON(s.payload()); err != nil {
		conn.Close()
		return nil
	}
	s.hub.Add(conn)

	// Drain the connection until the page goes away
	go func() {
		defer s.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

func (s *PanelServer) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *PanelServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
