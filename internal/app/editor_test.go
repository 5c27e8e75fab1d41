package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gem-defense/internal/build"
	"go-gem-defense/internal/defs"
)

func TestEditorCursorWraps(t *testing.T) {
	e := NewEditor(defs.Default())
	n := len(e.Passives())
	require.Greater(t, n, 2)

	e.MoveCursor(-1)
	assert.Equal(t, n-1, e.Cursor())
	e.MoveCursor(2)
	assert.Equal(t, 1, e.Cursor())
	assert.Equal(t, build.Mutation{Kind: build.MutAllocate, ID: e.Passives()[1]}, e.Allocate())
	assert.Equal(t, build.MutRefund, e.Refund().Kind)
}

func TestEditorSocketCommands(t *testing.T) {
	cat := defs.Default()
	st := build.NewState(cat, build.Limits{Sockets: 2, MaxLinks: 2, Slots: map[defs.SlotClass]int{defs.SlotRing: 1}}, 0)
	e := NewEditor(cat)

	e.SelectSocket(5, st)
	assert.Equal(t, 0, e.Socket(), "out of range selection is ignored")
	e.SelectSocket(1, st)

	m, ok := e.CycleAbility(st)
	require.True(t, ok)
	require.NoError(t, build.Apply(st, m))
	first := st.Sockets()[1].Ability
	m, _ = e.CycleAbility(st)
	require.NoError(t, build.Apply(st, m))
	assert.NotEqual(t, first, st.Sockets()[1].Ability)

	_, ok = e.RemoveLink(st)
	assert.False(t, ok)
	for range 2 {
		m, ok = e.AddLink(st)
		require.True(t, ok)
		require.NoError(t, build.Apply(st, m))
	}
	assert.Len(t, st.Sockets()[1].Links, 2)
	assert.NotEqual(t, st.Sockets()[1].Links[0], st.Sockets()[1].Links[1])

	m, ok = e.RemoveLink(st)
	require.True(t, ok)
	assert.Equal(t, 1, m.Index)
	require.NoError(t, build.Apply(st, m))
	assert.Len(t, st.Sockets()[1].Links, 1)
	assert.Empty(t, st.Sockets()[0].Links)
}

func TestEditorEquipment(t *testing.T) {
	cat := defs.Default()
	st := build.NewState(cat, build.Limits{Sockets: 1, Slots: map[defs.SlotClass]int{defs.SlotRing: 2, defs.SlotAmulet: 1}}, 0)
	e := NewEditor(cat)

	_, ok := e.UnequipLast(st)
	assert.False(t, ok)

	m, ok := e.EquipNext(st)
	require.True(t, ok)
	require.NoError(t, build.Apply(st, m))
	m, ok = e.EquipNext(st)
	require.True(t, ok)
	assert.NotEqual(t, st.Equipped()[0], m.ID)

	m, ok = e.UnequipLast(st)
	require.True(t, ok)
	require.NoError(t, build.Apply(st, m))
	assert.Empty(t, st.Equipped())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "socket 2 <- ABILITY_SPARK", Describe(build.Mutation{Kind: build.MutSocket, Slot: 1, ID: "ABILITY_SPARK"}))
	assert.Equal(t, "allocate might", Describe(build.Mutation{Kind: build.MutAllocate, ID: "might"}))
}
