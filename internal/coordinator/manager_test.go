package coordinator

import (
	"testing"
	"time"

	"github.com/spacekeep/capture-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func newTestManager(store *fakeStore) *SessionManager {
	return NewSessionManager(SessionConfig{
		StructuredDelay: 10 * time.Millisecond,
		LongformDelay:   20 * time.Millisecond,
	}, store, TitlePolicy{}, nil, nil)
}

func TestManagerOpenGetClose(t *testing.T) {
	m := newTestManager(newFakeStore())

	s := m.Open()
	require.Equal(t, 1, m.Count())

	got, ok := m.Get(s.ID())
	require.True(t, ok)
	require.Same(t, s, got)

	_, ok = m.Get("unknown")
	require.False(t, ok)

	require.True(t, m.Close(s.ID()))
	require.True(t, s.Closed())
	require.Equal(t, 0, m.Count())
	require.False(t, m.Close(s.ID()))
}

func TestManagerDiscardItemAcrossSessions(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)

	s1 := m.Open()
	s2 := m.Open()
	item := newTestItem()

	d1, err := s1.Open(item)
	require.NoError(t, err)
	d2, err := s2.Open(item)
	require.NoError(t, err)
	require.NoError(t, d1.Edit(domain.FieldTitle, "one"))
	require.NoError(t, d2.Edit(domain.FieldTitle, "two"))

	m.DiscardItem(item.ID)

	_, ok := s1.Draft(item.ID)
	require.False(t, ok)
	_, ok = s2.Draft(item.ID)
	require.False(t, ok)

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, store.updateCount())
}

func TestManagerCloseAll(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)

	s1 := m.Open()
	s2 := m.Open()

	d, err := s1.Open(newTestItem())
	require.NoError(t, err)
	require.NoError(t, d.Edit(domain.FieldTitle, "flushed by shutdown"))

	m.CloseAll()
	require.Equal(t, 0, m.Count())
	require.True(t, s1.Closed())
	require.True(t, s2.Closed())
	require.Equal(t, 1, store.updateCount())
}
