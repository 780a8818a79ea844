package utils

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"net"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/pkg/errors"
)

const (
	dataSizePrefixLen int    = 4
	dataSizeMax       uint32 = math.MaxUint32
)

//Send data with prefix of data size
func Send(c net.Conn, data []byte) error {
	if uint64(len(data)) > uint64(dataSizeMax) {
		return errors.New("data size is out of range")
	}
	data = frame(data)
	if n, err := c.Write(data); err != nil || n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}

//Receive data with size prefix
func Receive(c net.Conn) ([]byte, error) {
	var l uint32
	dataPrefix := make([]byte, dataSizePrefixLen)
	if _, err := io.ReadFull(c, dataPrefix); err != nil {
		return nil, err
	}
	l = binary.BigEndian.Uint32(dataPrefix)
	data := make([]byte, l)
	if _, err := io.ReadFull(c, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SendObject sends obj encoded as json
func SendObject(c net.Conn, obj interface{}) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return errors.Wrap(err, "failed to marshal object")
	}
	return Send(c, data)
}

// ReceiveObject receives a json object into obj
func ReceiveObject(c net.Conn, obj interface{}) error {
	data, err := Receive(c)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, obj); err != nil {
		return errors.Wrap(err, "failed to unmarshal object")
	}
	return nil
}

// Pack builds a complete request: the service type, then the method name
// and the request object as two frames
func Pack(t dosdevmgr.ServiceType, method string, req interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint16(t))
	for _, obj := range []interface{}{method, req} {
		data, err := json.Marshal(obj)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request")
		}
		buf.Write(frame(data))
	}
	return buf.Bytes(), nil
}

// SendRaw writes already framed bytes
func SendRaw(c net.Conn, data []byte) error {
	if n, err := c.Write(data); err != nil || n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}

// ReceiveServiceType reads the service type that starts every request
func ReceiveServiceType(c net.Conn) (dosdevmgr.ServiceType, error) {
	prefix := make([]byte, dosdevmgr.ServiceTypePrefixLen)
	if _, err := io.ReadFull(c, prefix); err != nil {
		return 0, err
	}
	return dosdevmgr.ServiceType(binary.BigEndian.Uint16(prefix)), nil
}

func frame(data []byte) []byte {
	dataPrefix := new(bytes.Buffer)
	binary.Write(dataPrefix, binary.BigEndian, uint32(len(data)))
	return append(dataPrefix.Bytes(), data...)
}
