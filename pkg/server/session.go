package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/helmcode/configlint-ai/pkg/controller"
	"github.com/helmcode/configlint-ai/pkg/model"
	"github.com/helmcode/configlint-ai/pkg/view"
)

const (
	sessionWriteWait = 10 * time.Second
	sessionPongWait  = 60 * time.Second
	sessionPingEvery = (sessionPongWait * 9) / 10
	sessionReadLimit = maxBodyBytes + 4096
)

var sessionUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

type sessionInbound struct {
	Type     string `json:"type"`
	Source   string `json:"source,omitempty"`
	Category string `json:"category,omitempty"`
	Tab      string `json:"tab,omitempty"`
}

type sessionOutbound struct {
	Type       string `json:"type"`
	HTML       string `json:"html,omitempty"`
	Phase      string `json:"phase,omitempty"`
	Copied     bool   `json:"copied"`
	CanAnalyze bool   `json:"canAnalyze"`
	Message    string `json:"message,omitempty"`
}

// Session serves one browser tab. The connection owns a single controller;
// every state change is pushed back as a re-rendered result panel.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	conn, err := sessionUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetReadLimit(sessionReadLimit)

	logger := h.logger.With(zap.String("session", uuid.NewString()))
	logger.Debug("session opened", zap.String("remote", r.RemoteAddr))

	ctx, cancel := context.WithCancel(r.Context())
	ctl := controller.New(ctx, h.analyzer, append([]controller.Option{controller.WithLogger(logger)}, h.cfg.ControllerOptions...)...)

	writeCh := make(chan sessionOutbound, 32)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
		ctl.Close()
		logger.Debug("session closed")
	}()

	if err := conn.SetReadDeadline(time.Now().Add(sessionPongWait)); err != nil {
		logger.Warn("set read deadline failed", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(sessionPongWait))
	})

	wg.Add(2)
	go func() {
		defer wg.Done()
		writeSession(ctx, conn, writeCh)
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ctl.Updates():
				pushSession(writeCh, renderMessage(ctl.Snapshot(), logger))
			}
		}
	}()

	pushSession(writeCh, renderMessage(ctl.Snapshot(), logger))

	for {
		var in sessionInbound
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !errors.Is(err, context.Canceled) {
				logger.Debug("session read ended", zap.Error(err))
			}
			return
		}
		if out, ok := h.dispatch(ctl, in); ok {
			pushSession(writeCh, out)
		}
	}
}

// dispatch applies one inbound message. State changes are reported through
// the controller's update signal, so only direct replies are returned.
func (h *Handlers) dispatch(ctl *controller.Controller, in sessionInbound) (sessionOutbound, bool) {
	switch strings.ToLower(strings.TrimSpace(in.Type)) {
	case "ping":
		return sessionOutbound{Type: "pong"}, true
	case "edit":
		ctl.SetSource(in.Source)
	case "category":
		cat, err := model.ParseCategory(in.Category)
		if err != nil {
			return errorMessage(err.Error()), true
		}
		ctl.SetCategory(cat)
	case "analyze":
		ctl.Analyze()
	case "tab":
		tab, ok := controller.ParseTab(in.Tab)
		if !ok {
			return errorMessage("unknown tab: " + in.Tab), true
		}
		ctl.SelectTab(tab)
	case "copy":
		if err := ctl.Copy(); err != nil {
			return errorMessage(err.Error()), true
		}
	case "":
		return errorMessage("type is required"), true
	default:
		return errorMessage("unsupported type: " + in.Type), true
	}
	return sessionOutbound{}, false
}

// writeSession is the only writer on conn. Closing conn on exit unblocks the reader.
func writeSession(ctx context.Context, conn *websocket.Conn, writeCh <-chan sessionOutbound) {
	defer conn.Close()
	ticker := time.NewTicker(sessionPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case out := <-writeCh:
			if err := conn.SetWriteDeadline(time.Now().Add(sessionWriteWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(sessionWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func renderMessage(s controller.Snapshot, logger *zap.Logger) sessionOutbound {
	html, err := view.Panel(s)
	if err != nil {
		logger.Error("render panel", zap.Error(err))
		return errorMessage("failed to render result")
	}
	return sessionOutbound{
		Type:       "render",
		HTML:       string(html),
		Phase:      s.Phase.Name(),
		Copied:     s.Copied,
		CanAnalyze: s.CanAnalyze(),
	}
}

func errorMessage(msg string) sessionOutbound {
	return sessionOutbound{Type: "error", Message: msg}
}

// pushSession never blocks; when the queue is full the oldest message is dropped.
func pushSession(writeCh chan sessionOutbound, out sessionOutbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
