package intake

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateWithDelete(t *testing.T) {
	st := NewStore(4, time.Minute)
	id := st.Create(NewSession(nil, nil))
	require.NotEmpty(t, id)
	assert.Equal(t, 1, st.Len())

	err := st.With(id, func(s *Session) error { return s.Answer("12") })
	require.NoError(t, err)

	_ = st.With(id, func(s *Session) error {
		assert.Equal(t, "budget", s.State().Field)
		return nil
	})

	assert.True(t, st.Delete(id))
	assert.False(t, st.Delete(id))
	assert.True(t, errors.Is(st.With(id, func(*Session) error { return nil }), ErrSessionNotFound))
}

func TestStoreEvictsLeastRecent(t *testing.T) {
	st := NewStore(2, time.Minute)
	first := st.Create(NewSession(nil, nil))
	st.Create(NewSession(nil, nil))
	st.Create(NewSession(nil, nil))

	assert.Equal(t, 2, st.Len())
	assert.ErrorIs(t, st.With(first, func(*Session) error { return nil }), ErrSessionNotFound)
}

func TestStoreSerializesPerSession(t *testing.T) {
	st := NewStore(4, time.Minute)
	id := st.Create(NewSession(nil, nil))

	var wg sync.WaitGroup
	for i := 0; i < 7; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = st.With(id, func(s *Session) error {
				return s.Answer(riskyAnswers[len(s.Collected())])
			})
		}(i)
	}
	wg.Wait()

	_ = st.With(id, func(s *Session) error {
		assert.True(t, s.State().Complete)
		return nil
	})
}

func TestStoreTracksEvictions(t *testing.T) {
	st := NewStore(2, time.Minute)
	st.Create(NewSession(nil, nil))
	second := st.Create(NewSession(nil, nil))
	st.Create(NewSession(nil, nil))
	assert.Equal(t, 2, st.tracked())

	require.True(t, st.Delete(second))
	assert.False(t, st.Delete(second))
	assert.Equal(t, 1, st.tracked())
	assert.Equal(t, st.Len(), st.tracked())
}

func TestStoreTracksExpiry(t *testing.T) {
	st := NewStore(4, 20*time.Millisecond)
	st.Create(NewSession(nil, nil))
	st.Create(NewSession(nil, nil))
	require.Equal(t, 2, st.tracked())

	require.Eventually(t, func() bool { return st.tracked() == 0 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, st.Len())
}
