package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetSet(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get(1)
	require.False(t, ok)

	s.Set(1, "Париж")
	s.Set(2, "Рим")
	s.Set(1, "Токио")

	city, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "Токио", city)

	city, _ = s.Get(2)
	require.Equal(t, "Рим", city)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			s.Set(id%5, "Лондон")
		}(int64(i))
		go func(id int64) {
			defer wg.Done()
			_, _ = s.Get(id % 5)
		}(int64(i))
	}
	wg.Wait()

	for id := int64(0); id < 5; id++ {
		city, ok := s.Get(id)
		require.True(t, ok)
		require.Equal(t, "Лондон", city)
	}
}
