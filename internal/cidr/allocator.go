/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package cidr hands out non-overlapping IPv4 sub-blocks from container blocks.
//
// An Allocator remembers, per container block, the lowest address that has not
// yet been handed out. Each request returns the first block of the desired
// prefix length at or after that address, so blocks come out in increasing
// order and never overlap.
package cidr

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"sync"
)

// CapacityExceededError is returned when the desired block does not fit in the
// remaining space of the container block.
type CapacityExceededError struct {
	Container netip.Prefix
	Desired   netip.Prefix
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("the size of the desired block exceeds the size of the container block\n"+
		"  Container CIDR: %s (%s -> %s)\n"+
		"  Desired CIDR: %s (%s -> %s)",
		e.Container, e.Container.Addr(), broadcastAddr(e.Container),
		e.Desired, e.Desired.Addr(), broadcastAddr(e.Desired))
}

// Allocator tracks the next free address of every container block it has seen.
// It is safe for concurrent use.
type Allocator struct {
	mu   sync.Mutex
	next map[netip.Prefix]uint64
}

// NewAllocator returns an allocator with no recorded state
func NewAllocator() *Allocator {
	return &Allocator{
		next: make(map[netip.Prefix]uint64),
	}
}

// Allocate returns the next free block of the desired prefix length within the
// container block. The container is normalised to its network address first, so
// "10.0.0.5/16" and "10.0.0.0/16" share state.
func (a *Allocator) Allocate(container netip.Prefix, desiredBits int) (netip.Prefix, error) {
	if !container.IsValid() || !container.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("container block %s must be a valid IPv4 prefix", container)
	}
	if desiredBits < 1 || desiredBits > 32 {
		return netip.Prefix{}, fmt.Errorf("desired prefix length %d must be between 1 and 32", desiredBits)
	}

	container = container.Masked()
	containerStart := uint64(toUint32(container.Addr()))
	containerEnd := uint64(broadcast(toUint32(container.Addr()), container.Bits()))

	a.mu.Lock()
	defer a.mu.Unlock()

	cursor, seen := a.next[container]
	if !seen {
		cursor = containerStart
	}

	size := uint64(1) << (32 - desiredBits)

	// The cursor only reaches 2^32 once the last address has been handed out.
	if cursor > containerEnd {
		desired := netip.PrefixFrom(fromUint32(uint32(containerEnd)), desiredBits).Masked()
		return netip.Prefix{}, &CapacityExceededError{Container: container, Desired: desired}
	}

	start := cursor &^ (size - 1)
	if start < cursor {
		// The aligned block would overlap space already handed out.
		start += size
	}
	end := start + size - 1

	if end > containerEnd || start < containerStart {
		desired := netip.PrefixFrom(fromUint32(uint32(start)), desiredBits)
		return netip.Prefix{}, &CapacityExceededError{Container: container, Desired: desired}
	}

	a.next[container] = end + 1
	desired := netip.PrefixFrom(fromUint32(uint32(start)), desiredBits)

	return desired, nil
}

// AllocateString is Allocate for textual CIDR notation, used by template functions.
func (a *Allocator) AllocateString(container string, desiredBits int) (string, error) {
	prefix, err := netip.ParsePrefix(container)
	if err != nil {
		return "", fmt.Errorf("invalid container block %q: %w", container, err)
	}

	block, err := a.Allocate(prefix, desiredBits)
	if err != nil {
		return "", err
	}
	return block.String(), nil
}

func netmask(bits int) uint32 {
	if bits == 0 {
		return 0
	}
	return ^uint32(0) << (32 - bits)
}

func broadcast(addr uint32, bits int) uint32 {
	return addr | ^netmask(bits)
}

func broadcastAddr(p netip.Prefix) netip.Addr {
	return fromUint32(broadcast(toUint32(p.Addr()), p.Bits()))
}

func toUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}

func fromUint32(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}
