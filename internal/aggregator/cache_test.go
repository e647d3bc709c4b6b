// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package aggregator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apiref/pkg/types"
)

func countingBuild(calls *int) BuildFunc {
	return func() (types.Index, error) {
		*calls++
		idx := types.NewIndex()
		idx.Put("misc", "/foo", types.MethodGet, &types.Metadata{Section: "misc"})
		return idx, nil
	}
}

func TestCache_BuildsOnce(t *testing.T) {
	calls := 0
	c := NewCache(countingBuild(&calls), 0)

	_, err := c.Index()
	require.NoError(t, err)
	idx, err := c.Index()
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, idx.Len())
}

func TestCache_Page(t *testing.T) {
	calls := 0
	renders := 0
	c := NewCache(countingBuild(&calls), 0)
	render := func(idx types.Index) ([]byte, error) {
		renders++
		return []byte("page"), nil
	}

	body, err := c.Page("html", render)
	require.NoError(t, err)
	assert.Equal(t, []byte("page"), body)

	_, err = c.Page("html", render)
	require.NoError(t, err)
	_, err = c.Page("md", render)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, renders)
	assert.Equal(t, 2, c.Len())
}

func TestCache_Invalidate(t *testing.T) {
	calls := 0
	c := NewCache(countingBuild(&calls), 0)

	_, err := c.Page("html", func(types.Index) ([]byte, error) { return []byte("x"), nil })
	require.NoError(t, err)

	c.Invalidate()
	assert.Equal(t, 0, c.Len())

	_, err = c.Index()
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCache_TTL(t *testing.T) {
	calls := 0
	c := NewCache(countingBuild(&calls), 20*time.Millisecond)

	_, err := c.Index()
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := c.Index()
		return err == nil && calls >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	fail := true
	calls := 0
	c := NewCache(func() (types.Index, error) {
		calls++
		if fail {
			return nil, errors.New("boom")
		}
		return types.NewIndex(), nil
	}, 0)

	_, err := c.Index()
	require.Error(t, err)

	_, err = c.Page("html", func(types.Index) ([]byte, error) { return nil, nil })
	require.Error(t, err)

	fail = false
	_, err = c.Index()
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}
