package zwire

import "net"

// NetAddr is a single network address entry, either embedded in a
// Version message (no timestamp) or carried in an Addr message's list
// (with timestamp). IP and Port are written big-endian, matching the
// teacher's net_addr.go encoding.
type NetAddr struct {
	Timestamp uint32
	Services  ServiceFlag
	IP        [16]byte
	Port      uint16
}

// NewNetAddr builds a NetAddr from a dotted IP and port, mapping IPv4
// addresses into their IPv4-in-IPv6 form the way the wire expects.
func NewNetAddr(ip net.IP, port uint16, services ServiceFlag) NetAddr {
	var raw [16]byte
	copy(raw[:], ip.To16())
	return NetAddr{Services: services, IP: raw, Port: port}
}

// Addr returns the address this entry describes as a host:port string.
func (n NetAddr) Addr() string {
	ip := net.IP(n.IP[:])
	return net.JoinHostPort(ip.String(), portString(n.Port))
}

func (n *NetAddr) encode(w *binWriter) {
	w.Write(uint64(n.Services))
	w.WriteBigEnd(n.IP)
	w.WriteBigEnd(n.Port)
}

func (n *NetAddr) decode(r *binReader) {
	var services uint64
	r.Read(&services)
	n.Services = ServiceFlag(services)
	r.ReadBigEnd(&n.IP)
	r.ReadBigEnd(&n.Port)
}

func (n *NetAddr) encodeTimestamped(w *binWriter) {
	w.Write(n.Timestamp)
	n.encode(w)
}

func (n *NetAddr) decodeTimestamped(r *binReader) {
	r.Read(&n.Timestamp)
	n.decode(r)
}
