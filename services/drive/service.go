package drive

import (
	"context"
	"net"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	driveapi "github.com/YLonely/dosdev-manager/api/services/drive"
	"github.com/YLonely/dosdev-manager/api/types"
	"github.com/YLonely/dosdev-manager/dosdevices"
	"github.com/YLonely/dosdev-manager/log"
	"github.com/YLonely/dosdev-manager/services"
	"github.com/YLonely/dosdev-manager/utils"
	"github.com/pkg/errors"
)

func New(ns *dosdevices.Namespace) services.Service {
	return &driveService{
		ns:     ns,
		router: services.NewRouter(),
	}
}

type driveService struct {
	ns     *dosdevices.Namespace
	router services.Router
}

var _ services.Service = &driveService{}

func (svr *driveService) Init() error {
	if svr.ns.Root == "" {
		return errors.New("drive service needs a namespace root")
	}
	svr.router.AddHandler(driveapi.MethodAllocate, svr.handleAllocate)
	svr.router.AddHandler(driveapi.MethodRelease, svr.handleRelease)
	svr.router.AddHandler(driveapi.MethodList, svr.handleList)
	svr.router.AddHandler(driveapi.MethodMask, svr.handleMask)
	log.Logger(dosdevmgr.DriveService, "Init").WithField("root", svr.ns.Root).Info("Service initialized")
	return nil
}

func (svr *driveService) Handle(ctx context.Context, conn net.Conn) error {
	if err := svr.router.Handle(conn); err != nil {
		log.Logger(dosdevmgr.DriveService, "Handle").Error(err)
		conn.Close()
		return err
	}
	return nil
}

func (svr *driveService) Stop() error {
	return nil
}

func (svr *driveService) handleAllocate(conn net.Conn) error {
	var r driveapi.AllocateRequest
	if err := utils.ReceiveObject(conn, &r); err != nil {
		return err
	}
	log.WithInterface(log.Logger(dosdevmgr.DriveService, "handleAllocate"), "request", r).Debug()
	rsp := driveapi.AllocateResponse{}
	class, err := dosdevices.ParseClass(r.Class)
	if err == nil {
		var s dosdevices.Slot
		if r.MountPoint != "" {
			s, err = svr.ns.AllocateAt(r.Device, class, r.MountPoint)
		} else {
			s, err = svr.ns.Allocate(r.Device, class)
		}
		if err == nil {
			rsp.Letter = s.String()
		}
	}
	rsp.Error = types.ToError(err)
	if err := utils.SendObject(conn, rsp); err != nil {
		return err
	}
	log.WithInterface(log.Logger(dosdevmgr.DriveService, "handleAllocate"), "response", rsp).Debug()
	return nil
}

func (svr *driveService) handleRelease(conn net.Conn) error {
	var r driveapi.ReleaseRequest
	if err := utils.ReceiveObject(conn, &r); err != nil {
		return err
	}
	log.WithInterface(log.Logger(dosdevmgr.DriveService, "handleRelease"), "request", r).Debug()
	s, err := dosdevices.ParseSlot(r.Letter)
	if err == nil {
		if r.Purge {
			err = svr.ns.Purge(s)
		} else {
			err = svr.ns.Release(s)
		}
	}
	return utils.SendObject(conn, driveapi.ReleaseResponse{Error: types.ToError(err)})
}

func (svr *driveService) handleList(conn net.Conn) error {
	var r driveapi.ListRequest
	if err := utils.ReceiveObject(conn, &r); err != nil {
		return err
	}
	rsp := driveapi.ListResponse{}
	drives, err := svr.ns.ListDrives()
	for _, d := range drives {
		rsp.Drives = append(rsp.Drives, types.Drive{
			Letter:     d.Slot.String(),
			Device:     d.Device,
			MountPoint: d.MountPoint,
			State:      d.State.String(),
			Class:      d.Class.String(),
		})
	}
	rsp.Error = types.ToError(err)
	return utils.SendObject(conn, rsp)
}

func (svr *driveService) handleMask(conn net.Conn) error {
	var r driveapi.MaskRequest
	if err := utils.ReceiveObject(conn, &r); err != nil {
		return err
	}
	mask := svr.ns.DevicesPointingAt(r.Path)
	return utils.SendObject(conn, driveapi.MaskResponse{
		Mask:    uint32(mask),
		Letters: mask.String(),
	})
}
