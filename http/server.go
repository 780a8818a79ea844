package http

import (
	"context"
	"encoding/json"
	"fmt"
	gohttp "net/http"
	"strings"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/api/types"
	"github.com/YLonely/dosdev-manager/client"
	"github.com/YLonely/dosdev-manager/dosdevices"
	"github.com/YLonely/dosdev-manager/log"
	"github.com/pkg/errors"
)

// NewServer builds a JSON gateway on port that forwards every request to the
// daemon listening on socket
func NewServer(socket string, port int) *Server {
	ret := &Server{
		dial: func() (*client.Client, error) {
			return client.NewDaemonClient(client.Config{SocketPath: socket})
		},
	}
	ret.s = &gohttp.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", port),
		Handler: ret.Handler(),
	}
	return ret
}

type Server struct {
	dial func() (*client.Client, error)
	s    *gohttp.Server
}

func (svr *Server) Handler() gohttp.Handler {
	mux := gohttp.NewServeMux()
	mux.HandleFunc("/drives", svr.listDrives)
	mux.HandleFunc("/drives/allocate", svr.allocate)
	mux.HandleFunc("/drives/release", svr.release)
	mux.HandleFunc("/drives/mask", svr.mask)
	mux.HandleFunc("/devices/", svr.device)
	return mux
}

func (svr *Server) Start() chan error {
	errorC := make(chan error, 1)
	go func() {
		log.Logger(dosdevmgr.HttpService, "Start").WithField("addr", svr.s.Addr).Info("Service started")
		if err := svr.s.ListenAndServe(); err != gohttp.ErrServerClosed {
			errorC <- err
		}
	}()
	return errorC
}

func (svr *Server) Shutdown() error {
	return svr.s.Shutdown(context.Background())
}

// withClient dials the daemon for one request
func (svr *Server) withClient(w gohttp.ResponseWriter, method string, f func(*client.Client) (interface{}, error)) {
	c, err := svr.dial()
	if err != nil {
		log.Logger(dosdevmgr.HttpService, method).WithError(err).Error("failed to connect to the daemon")
		w.WriteHeader(gohttp.StatusBadGateway)
		return
	}
	defer c.Close(context.Background())
	rsp, err := f(c)
	if err != nil {
		log.Logger(dosdevmgr.HttpService, method).WithError(err).Debug()
		writeJSON(w, method, statusOf(err), errorResponse{Message: err.Error()})
		return
	}
	if rsp == nil {
		w.WriteHeader(gohttp.StatusNoContent)
		return
	}
	writeJSON(w, method, gohttp.StatusOK, rsp)
}

func statusOf(err error) int {
	switch {
	case dosdevices.IsNotFound(err), dosdevices.IsNoSuchDevice(err):
		return gohttp.StatusNotFound
	case dosdevices.IsNoFreeSlot(err):
		return gohttp.StatusConflict
	case dosdevices.IsAccessDenied(err):
		return gohttp.StatusForbidden
	case errors.Is(err, types.ErrInvalidArgument):
		return gohttp.StatusBadRequest
	}
	return gohttp.StatusInternalServerError
}

func writeJSON(w gohttp.ResponseWriter, method string, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Logger(dosdevmgr.HttpService, method).Error(err)
	}
}

func decode(w gohttp.ResponseWriter, r *gohttp.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, "decode", gohttp.StatusBadRequest, errorResponse{Message: err.Error()})
		return false
	}
	return true
}

func (svr *Server) listDrives(w gohttp.ResponseWriter, r *gohttp.Request) {
	if r.Method != gohttp.MethodGet {
		w.WriteHeader(gohttp.StatusMethodNotAllowed)
		return
	}
	svr.withClient(w, "listDrives", func(c *client.Client) (interface{}, error) {
		drives, err := c.ListDrives()
		if err != nil {
			return nil, err
		}
		if drives == nil {
			drives = []types.Drive{}
		}
		return listResponse{Drives: drives}, nil
	})
}

func (svr *Server) allocate(w gohttp.ResponseWriter, r *gohttp.Request) {
	if r.Method != gohttp.MethodPost {
		w.WriteHeader(gohttp.StatusMethodNotAllowed)
		return
	}
	req := allocateRequest{}
	if !decode(w, r, &req) {
		return
	}
	svr.withClient(w, "allocate", func(c *client.Client) (interface{}, error) {
		letter, err := c.Allocate(req.Device, req.Class, req.MountPoint)
		if err != nil {
			return nil, err
		}
		return allocateResponse{Letter: letter}, nil
	})
}

func (svr *Server) release(w gohttp.ResponseWriter, r *gohttp.Request) {
	if r.Method != gohttp.MethodPost {
		w.WriteHeader(gohttp.StatusMethodNotAllowed)
		return
	}
	req := releaseRequest{}
	if !decode(w, r, &req) {
		return
	}
	svr.withClient(w, "release", func(c *client.Client) (interface{}, error) {
		return nil, c.Release(req.Letter, req.Purge)
	})
}

func (svr *Server) mask(w gohttp.ResponseWriter, r *gohttp.Request) {
	if r.Method != gohttp.MethodGet {
		w.WriteHeader(gohttp.StatusMethodNotAllowed)
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, "mask", gohttp.StatusBadRequest, errorResponse{Message: "missing path"})
		return
	}
	svr.withClient(w, "mask", func(c *client.Client) (interface{}, error) {
		m, err := c.Mask(path)
		if err != nil {
			return nil, err
		}
		return maskResponse{Mask: uint32(m), Letters: m.String()}, nil
	})
}

func (svr *Server) device(w gohttp.ResponseWriter, r *gohttp.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/devices/")
	if dosdevices.CheckName(name) != nil {
		w.WriteHeader(gohttp.StatusNotFound)
		return
	}
	switch r.Method {
	case gohttp.MethodGet:
		svr.withClient(w, "getDevice", func(c *client.Client) (interface{}, error) {
			target, err := c.ReadMapping(name, 0)
			if err != nil {
				return nil, err
			}
			return mappingResponse{Name: name, Target: target}, nil
		})
	case gohttp.MethodPut:
		req := mappingRequest{}
		if !decode(w, r, &req) {
			return
		}
		if req.Target == "" {
			writeJSON(w, "putDevice", gohttp.StatusBadRequest, errorResponse{Message: "missing target"})
			return
		}
		svr.withClient(w, "putDevice", func(c *client.Client) (interface{}, error) {
			return nil, c.WriteMapping(name, req.Target)
		})
	case gohttp.MethodDelete:
		svr.withClient(w, "deleteDevice", func(c *client.Client) (interface{}, error) {
			return nil, c.WriteMapping(name, "")
		})
	default:
		w.WriteHeader(gohttp.StatusMethodNotAllowed)
	}
}
