// a fast unique time-based ID algorithm from the mongo mgo driver
package game

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// gameIdCounter is atomically incremented when generating a new game
// ID. It's used as the counter part of an id.
var gameIdCounter uint32 = 0

// machineId stores a machine id generated once and used in subsequent
// calls to newGameID.
var machineId []byte

func initMachineId() {
	var sum [3]byte
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	hw := md5.New()
	hw.Write([]byte(hostname))
	copy(sum[:3], hw.Sum(nil))
	machineId = sum[:]
}

func init() {
	initMachineId()
}

// newGameID returns a new unique time-ordered game ID: a timestamp,
// a machine hash, the pid, and a counter, hex-encoded.
func newGameID() string {
	b := make([]byte, 12)
	// Timestamp, 4 bytes, big endian
	binary.BigEndian.PutUint32(b, uint32(time.Now().Unix()))
	// Machine, first 3 bytes of md5(hostname)
	b[4] = machineId[0]
	b[5] = machineId[1]
	b[6] = machineId[2]
	// Pid, 2 bytes, big endian
	pid := os.Getpid()
	b[7] = byte(pid >> 8)
	b[8] = byte(pid)
	// Increment, 3 bytes, big endian
	i := atomic.AddUint32(&gameIdCounter, 1)
	b[9] = byte(i >> 16)
	b[10] = byte(i >> 8)
	b[11] = byte(i)
	return fmt.Sprintf("%x", b)
}
