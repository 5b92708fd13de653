// disk.go - disk mailbox controller and file-backed disk store

/*
disk.go - DiskController and DiskFile

DiskController is the peripheral that services the guest's disk
mailbox once per cycle: tag 0 is idle, tag 1 is a write (sector, data
-> disk), tag 2 is a read (disk at sector -> data), and any other tag
value is a fatal fault. After a non-zero tag is serviced the controller
resets the tag to 0.

DiskFile is the host collaborator: a flat, fixed-size file addressed in
4-byte big-endian sectors, sector N at byte offset 4N. The file is
created and zero-filled at construction if it does not already exist.
*/

package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	diskTagIdle  = 0
	diskTagWrite = 1
	diskTagRead  = 2
)

// DiskFile is a flat, fixed-size disk image addressed in 4-byte
// big-endian sectors.
type DiskFile struct {
	file *os.File
	size uint64
}

// OpenDiskFile opens path for read/write, creating and zero-filling it
// to size bytes if it does not already exist. size must be divisible
// by 4.
func OpenDiskFile(path string, size uint64) (*DiskFile, error) {
	if size%4 != 0 {
		return nil, fmt.Errorf("disk: size %d is not divisible by 4", size)
	}

	existed := true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		existed = false
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("disk: opening %q: %w", path, err)
	}

	if !existed {
		if err := f.Truncate(int64(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("disk: growing %q to %d bytes: %w", path, size, err)
		}
	}

	return &DiskFile{file: f, size: size}, nil
}

func (d *DiskFile) maxSector() uint64 { return d.size / 4 }

// ReadSector reads the 4-byte big-endian word at sector.
func (d *DiskFile) ReadSector(sector uint64) (uint32, error) {
	if sector >= d.maxSector() {
		return 0, fmt.Errorf("disk: sector %d out of range (max %d)", sector, d.maxSector()-1)
	}
	var buf [4]byte
	if _, err := d.file.ReadAt(buf[:], int64(sector)*4); err != nil && err != io.EOF {
		return 0, fmt.Errorf("disk: reading sector %d: %w", sector, err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// WriteSector writes data as a 4-byte big-endian word at sector.
func (d *DiskFile) WriteSector(sector uint64, data uint32) error {
	if sector >= d.maxSector() {
		return fmt.Errorf("disk: sector %d out of range (max %d)", sector, d.maxSector()-1)
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], data)
	if _, err := d.file.WriteAt(buf[:], int64(sector)*4); err != nil {
		return fmt.Errorf("disk: writing sector %d: %w", sector, err)
	}
	return nil
}

// Close releases the backing file.
func (d *DiskFile) Close() error { return d.file.Close() }

// DiskDevice is the narrow collaborator DiskController depends on, so
// tests can substitute an in-memory fake without touching the
// filesystem.
type DiskDevice interface {
	ReadSector(sector uint64) (uint32, error)
	WriteSector(sector uint64, data uint32) error
}

// DiskController services the guest's disk mailbox against a
// DiskDevice, once per cycle.
type DiskController struct {
	device DiskDevice
}

// NewDiskController wires a DiskDevice to the mailbox protocol.
func NewDiskController(device DiskDevice) *DiskController {
	return &DiskController{device: device}
}

// Service inspects the mailbox tag and, if non-zero, performs the
// requested transfer before resetting the tag to idle. An unrecognized
// tag value is a fatal execution fault.
func (d *DiskController) Service(mem *Memory) {
	tag := mem.ReadByte(mem.DiskTagAddr())
	if tag == diskTagIdle {
		return
	}

	sector := uint64(mem.ReadWord(mem.DiskSectorHiAddr()))<<32 | uint64(mem.ReadWord(mem.DiskSectorLoAddr()))

	switch tag {
	case diskTagWrite:
		data := mem.ReadWord(mem.DiskDataAddr())
		if err := d.device.WriteSector(sector, data); err != nil {
			fault("disk: %v", err)
		}
	case diskTagRead:
		data, err := d.device.ReadSector(sector)
		if err != nil {
			fault("disk: %v", err)
		}
		mem.WriteWord(mem.DiskDataAddr(), data)
	default:
		fault("disk: invalid mailbox tag %d", tag)
	}

	mem.WriteByte(mem.DiskTagAddr(), diskTagIdle)
}
