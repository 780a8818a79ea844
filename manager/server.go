package manager

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/config"
	"github.com/YLonely/dosdev-manager/dosdevices"
	"github.com/YLonely/dosdev-manager/log"
	"github.com/YLonely/dosdev-manager/ports"
	"github.com/YLonely/dosdev-manager/services"
	"github.com/YLonely/dosdev-manager/services/device"
	"github.com/YLonely/dosdev-manager/services/drive"
	"github.com/YLonely/dosdev-manager/utils"
	"github.com/google/uuid"
)

type Server struct {
	services map[dosdevmgr.ServiceType]services.Service
	listener net.Listener
	group    sync.WaitGroup

	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool
}

// NewServer listens on the configured socket and serves the namespace under
// the configured root
func NewServer(c config.Config) (*Server, error) {
	if err := os.MkdirAll(c.Root, 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(c.Socket), 0755); err != nil {
		return nil, err
	}
	os.Remove(c.Socket)
	addr, err := net.ResolveUnixAddr("unix", c.Socket)
	if err != nil {
		return nil, err
	}
	listener, err := net.ListenUnix("unix", addr)
	if err != nil {
		return nil, err
	}
	ns := dosdevices.New(c.Root)
	ns.MaxAttempts = c.MaxAttempts
	svr, err := New(listener, map[dosdevmgr.ServiceType]services.Service{
		dosdevmgr.DriveService: drive.New(ns),
		dosdevmgr.DeviceService: device.New(ns,
			portManager(c, ports.Serial),
			portManager(c, ports.Parallel),
		),
	})
	if err != nil {
		listener.Close()
		return nil, err
	}
	return svr, nil
}

// New serves svcs on an existing listener
func New(listener net.Listener, svcs map[dosdevmgr.ServiceType]services.Service) (*Server, error) {
	for t, service := range svcs {
		if err := service.Init(); err != nil {
			log.Logger(dosdevmgr.MainService, "New").WithField("serviceType", t).WithError(err).Error("failed to init service")
			return nil, err
		}
	}
	return &Server{
		services: svcs,
		listener: listener,
		conns:    map[net.Conn]struct{}{},
	}, nil
}

func portManager(c config.Config, kind ports.Kind) *ports.Manager {
	userDefined, templates := c.Ports.Serial, c.Templates.Serial
	if kind == ports.Parallel {
		userDefined, templates = c.Ports.Parallel, c.Templates.Parallel
	}
	m := ports.NewManager(c.Root, kind, userDefined)
	if len(templates) > 0 {
		m.Templates = templates
	}
	return m
}

func (s *Server) Start(ctx context.Context) chan error {
	errorC := make(chan error, 1)
	go func() {
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				if !s.isClosed() {
					errorC <- err
				}
				return
			}
			if !s.track(conn) {
				conn.Close()
				return
			}
			s.group.Add(1)
			go s.serve(ctx, conn)
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return errorC
}

func (s *Server) serve(ctx context.Context, conn net.Conn) {
	defer s.group.Done()
	defer s.untrack(conn)
	logger := log.Logger(dosdevmgr.MainService, "serve").WithField("conn", uuid.New().String())
	logger.Debug("connection accepted")
	for {
		svrType, err := utils.ReceiveServiceType(conn)
		if err != nil {
			if err != io.EOF && !s.isClosed() {
				logger.WithError(err).Error("Can't handle service type")
			}
			conn.Close()
			return
		}
		svr, exists := s.services[svrType]
		if !exists {
			conn.Close()
			logger.WithField("serviceType", svrType).Error("No such service")
			return
		}
		logger.WithField("target", svrType.String()).Debug("request")
		if err := svr.Handle(ctx, conn); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			conn.Close()
			return
		default:
		}
	}
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Shutdown stops accepting, closes open connections and stops every service
func (s *Server) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.listener.Close()
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	s.group.Wait()
	for t, ss := range s.services {
		if err := ss.Stop(); err != nil {
			log.Logger(dosdevmgr.MainService, "Shutdown").WithField("serviceType", t).WithError(err).Error()
		}
	}
}
