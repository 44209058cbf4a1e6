package lisp

import (
	"fmt"
	"net"
)

// oscPad pads payload to a 4-byte boundary, then appends a fixed 4-byte
// type-tag block `,\0\0\0` (§6 "udpsend"), matching system.h's
// OSCstring::encode exactly: the payload's own padding always adds at
// least one zero byte, and a full 4 bytes when the payload is already
// 4-byte aligned.
func oscPad(payload string) []byte {
	buf := []byte(payload)
	pad := 4 - len(buf)%4
	for i := 0; i < pad; i++ {
		buf = append(buf, 0)
	}
	return append(buf, ',', 0, 0, 0)
}

// opFnUDPSend implements `udpsend host port payload [osc?]` (§6).
func opFnUDPSend(env *Env, args []Atom) (Atom, error) {
	host, err := wantString(args, 0)
	if err != nil {
		return Atom{}, err
	}
	port, err := wantArray(args, 1)
	if err != nil {
		return Atom{}, err
	}
	payload, err := wantString(args, 2)
	if err != nil {
		return Atom{}, err
	}
	osc := false
	if len(args) > 3 {
		flag, err := wantArray(args, 3)
		if err != nil {
			return Atom{}, err
		}
		osc = IsTruthy(flag)
	}

	addr := fmt.Sprintf("%s:%d", host.str, int(port.arr[0]))
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return Atom{}, newError("[udpsend] cannot bind/recv on socket: %s", err.Error())
	}
	defer conn.Close()

	data := []byte(payload.str)
	if osc {
		data = oscPad(payload.str)
	}
	if _, err := conn.Write(data); err != nil {
		return Atom{}, newError("[udpsend] cannot bind/recv on socket: %s", err.Error())
	}
	return Nil(), nil
}

// opFnUDPRecv implements `udprecv host port` (§6): binds, receives one
// datagram up to 4096 bytes, returns it as a String.
func opFnUDPRecv(env *Env, args []Atom) (Atom, error) {
	host, err := wantString(args, 0)
	if err != nil {
		return Atom{}, err
	}
	port, err := wantArray(args, 1)
	if err != nil {
		return Atom{}, err
	}
	addr := fmt.Sprintf("%s:%d", host.str, int(port.arr[0]))
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return Atom{}, newError("[udprecv] cannot bind/recv on socket: %s", err.Error())
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return Atom{}, newError("[udprecv] cannot bind/recv on socket: %s", err.Error())
	}
	defer conn.Close()

	buf := make([]byte, 4096)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		return Atom{}, newError("[udprecv] cannot bind/recv on socket: %s", err.Error())
	}
	return NewString(string(buf[:n])), nil
}

func registerUDPOps(env *Env) {
	defOp(env, "udpsend", 3, opFnUDPSend)
	defOp(env, "udprecv", 2, opFnUDPRecv)
}
