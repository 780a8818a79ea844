package device

import (
	"context"
	"net"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	deviceapi "github.com/YLonely/dosdev-manager/api/services/device"
	"github.com/YLonely/dosdev-manager/api/types"
	"github.com/YLonely/dosdev-manager/dosdevices"
	"github.com/YLonely/dosdev-manager/log"
	"github.com/YLonely/dosdev-manager/ports"
	"github.com/YLonely/dosdev-manager/services"
	"github.com/YLonely/dosdev-manager/utils"
	"github.com/sirupsen/logrus"
)

// New serves named mappings of ns and the port managers, keyed by kind
func New(ns *dosdevices.Namespace, managers ...*ports.Manager) services.Service {
	svr := &deviceService{
		ns:       ns,
		managers: map[ports.Kind]*ports.Manager{},
		router:   services.NewRouter(),
	}
	for _, m := range managers {
		svr.managers[m.Kind] = m
	}
	return svr
}

type deviceService struct {
	ns       *dosdevices.Namespace
	managers map[ports.Kind]*ports.Manager
	router   services.Router
}

var _ services.Service = &deviceService{}

func (svr *deviceService) Init() error {
	svr.router.AddHandler(deviceapi.MethodRead, svr.handleRead)
	svr.router.AddHandler(deviceapi.MethodWrite, svr.handleWrite)
	svr.router.AddHandler(deviceapi.MethodScanPorts, svr.handleScanPorts)
	svr.router.AddHandler(deviceapi.MethodInstallPorts, svr.handleInstallPorts)
	log.Logger(dosdevmgr.DeviceService, "Init").Info("Service initialized")
	return nil
}

func (svr *deviceService) Handle(ctx context.Context, conn net.Conn) error {
	if err := svr.router.Handle(conn); err != nil {
		log.Logger(dosdevmgr.DeviceService, "Handle").Error(err)
		conn.Close()
		return err
	}
	return nil
}

func (svr *deviceService) Stop() error {
	return nil
}

func (svr *deviceService) handleRead(conn net.Conn) error {
	var r deviceapi.ReadRequest
	if err := utils.ReceiveObject(conn, &r); err != nil {
		return err
	}
	var target string
	err := dosdevices.CheckName(r.Name)
	if err == nil {
		if r.Capacity > 0 {
			target, err = svr.ns.ReadMapping(r.Name, r.Capacity)
		} else {
			target, err = svr.ns.Mapping(r.Name)
		}
	}
	return utils.SendObject(conn, deviceapi.ReadResponse{Target: target, Error: types.ToError(err)})
}

func (svr *deviceService) handleWrite(conn net.Conn) error {
	var r deviceapi.WriteRequest
	if err := utils.ReceiveObject(conn, &r); err != nil {
		return err
	}
	err := dosdevices.CheckName(r.Name)
	if err == nil {
		err = svr.ns.WriteMapping(r.Name, r.Target)
	}
	log.Logger(dosdevmgr.DeviceService, "handleWrite").WithFields(logrus.Fields{
		"name":   r.Name,
		"target": r.Target,
	}).WithError(err).Debug()
	return utils.SendObject(conn, deviceapi.WriteResponse{Error: types.ToError(err)})
}

func (svr *deviceService) handleScanPorts(conn net.Conn) error {
	return svr.handlePorts(conn, (*ports.Manager).Plan)
}

func (svr *deviceService) handleInstallPorts(conn net.Conn) error {
	return svr.handlePorts(conn, (*ports.Manager).Install)
}

func (svr *deviceService) handlePorts(conn net.Conn, op func(*ports.Manager) ([]ports.Port, error)) error {
	var r deviceapi.PortsRequest
	if err := utils.ReceiveObject(conn, &r); err != nil {
		return err
	}
	rsp := deviceapi.PortsResponse{}
	kind, err := ports.ParseKind(r.Kind)
	if err == nil {
		m, exists := svr.managers[kind]
		if !exists {
			m = ports.NewManager(svr.ns.Root, kind, nil)
		}
		var planned []ports.Port
		if planned, err = op(m); err == nil {
			for _, p := range planned {
				rsp.Ports = append(rsp.Ports, types.Port{Name: p.Name, Target: p.Target})
			}
		}
	}
	rsp.Error = types.ToError(err)
	return utils.SendObject(conn, rsp)
}
