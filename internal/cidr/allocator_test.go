/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cidr

import (
	"errors"
	"net/netip"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_BasicUsage(t *testing.T) {
	a := NewAllocator()

	block, err := a.AllocateString("10.0.0.0/16", 16)

	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/16", block)
}

func TestAllocator_ContainerBlockSizeExceeded(t *testing.T) {
	a := NewAllocator()

	_, err := a.AllocateString("10.0.0.0/24", 16)

	require.Error(t, err)
	var capErr *CapacityExceededError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, "10.0.0.0/24", capErr.Container.String())
	assert.Contains(t, err.Error(), "exceeds the size of the container block")
	assert.Contains(t, err.Error(), "10.0.0.0 -> 10.0.0.255")
}

func TestAllocator_IncrementingPrefixSizes(t *testing.T) {
	expected := []string{
		"0.0.0.0/1",
		"128.0.0.0/2",
		"192.0.0.0/3",
		"224.0.0.0/4",
		"240.0.0.0/5",
		"248.0.0.0/6",
		"252.0.0.0/7",
		"254.0.0.0/8",
		"255.0.0.0/9",
		"255.128.0.0/10",
		"255.192.0.0/11",
		"255.224.0.0/12",
		"255.240.0.0/13",
		"255.248.0.0/14",
		"255.252.0.0/15",
		"255.254.0.0/16",
		"255.255.0.0/17",
		"255.255.128.0/18",
		"255.255.192.0/19",
		"255.255.224.0/20",
		"255.255.240.0/21",
		"255.255.248.0/22",
		"255.255.252.0/23",
		"255.255.254.0/24",
		"255.255.255.0/25",
		"255.255.255.128/26",
		"255.255.255.192/27",
		"255.255.255.224/28",
		"255.255.255.240/29",
		"255.255.255.248/30",
		"255.255.255.252/31",
		"255.255.255.254/32",
	}

	a := NewAllocator()
	for i, want := range expected {
		got, err := a.AllocateString("0.0.0.0/0", i+1)
		require.NoError(t, err, "prefix size %d", i+1)
		assert.Equal(t, want, got, "prefix size %d", i+1)
	}

	last, err := a.AllocateString("0.0.0.0/0", 32)
	require.NoError(t, err)
	assert.Equal(t, "255.255.255.255/32", last)

	_, err = a.AllocateString("0.0.0.0/0", 32)
	var capErr *CapacityExceededError
	assert.True(t, errors.As(err, &capErr))
}

func TestAllocator_LargerBlockAfterSmallerIsAligned(t *testing.T) {
	a := NewAllocator()

	small, err := a.AllocateString("10.0.0.0/8", 24)
	require.NoError(t, err)
	large, err := a.AllocateString("10.0.0.0/8", 16)
	require.NoError(t, err)
	next, err := a.AllocateString("10.0.0.0/8", 24)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.0/24", small)
	assert.Equal(t, "10.1.0.0/16", large)
	assert.Equal(t, "10.2.0.0/24", next)

	_, err = a.AllocateString("10.0.0.0/16", 24)
	require.NoError(t, err)
	_, err = a.AllocateString("10.0.0.0/16", 16)
	var capErr *CapacityExceededError
	assert.ErrorAs(t, err, &capErr)
}

func TestAllocator_NormalisesContainerBlock(t *testing.T) {
	a := NewAllocator()

	first, err := a.AllocateString("172.31.0.5/16", 24)
	require.NoError(t, err)
	second, err := a.AllocateString("172.31.0.0/16", 24)
	require.NoError(t, err)

	assert.Equal(t, "172.31.0.0/24", first)
	assert.Equal(t, "172.31.1.0/24", second)
}

func TestAllocator_FailedRequestLeavesStateUnchanged(t *testing.T) {
	a := NewAllocator()
	container := netip.MustParsePrefix("10.0.0.0/24")

	_, err := a.Allocate(container, 25)
	require.NoError(t, err)

	_, err = a.Allocate(container, 24)
	require.Error(t, err)

	next, err := a.Allocate(container, 25)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.128/25", next.String())

	_, err = a.Allocate(container, 32)
	assert.Error(t, err)
}

func TestAllocator_MonotonicNonOverlapping(t *testing.T) {
	a := NewAllocator()
	container := netip.MustParsePrefix("10.0.0.0/16")
	sizes := []int{24, 28, 20, 26, 24, 32, 22, 30}

	var blocks []netip.Prefix
	for _, size := range sizes {
		block, err := a.Allocate(container, size)
		require.NoError(t, err)
		assert.True(t, container.Contains(block.Addr()))
		blocks = append(blocks, block)
	}

	for i := 1; i < len(blocks); i++ {
		prev, cur := blocks[i-1], blocks[i]
		assert.True(t, prev.Addr().Less(cur.Addr()), "%s should precede %s", prev, cur)
		for j := 0; j < i; j++ {
			assert.False(t, blocks[j].Overlaps(cur), "%s overlaps %s", blocks[j], cur)
		}
	}
}

func TestAllocator_IndependentContainers(t *testing.T) {
	a := NewAllocator()

	first, err := a.AllocateString("10.0.0.0/16", 24)
	require.NoError(t, err)
	other, err := a.AllocateString("10.1.0.0/16", 24)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.0/24", first)
	assert.Equal(t, "10.1.0.0/24", other)
}

func TestAllocator_InvalidInput(t *testing.T) {
	a := NewAllocator()

	tests := []struct {
		name      string
		container string
		bits      int
	}{
		{name: "unparseable container", container: "not-a-cidr", bits: 24},
		{name: "ipv6 container", container: "2001:db8::/32", bits: 48},
		{name: "prefix too small", container: "10.0.0.0/8", bits: 0},
		{name: "prefix too large", container: "10.0.0.0/8", bits: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.AllocateString(tt.container, tt.bits)
			assert.Error(t, err)
		})
	}
}

func TestAllocator_ConcurrentUse(t *testing.T) {
	a := NewAllocator()
	container := netip.MustParsePrefix("10.0.0.0/16")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[netip.Prefix]bool)
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			block, err := a.Allocate(container, 24)
			if err != nil {
				return
			}
			mu.Lock()
			results[block] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, results, 64)
}
