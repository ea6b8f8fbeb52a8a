package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	s := New()

	first, err := s.Insert("john", "john@example.com", []byte("digest-1"))
	require.NoError(t, err)
	second, err := s.Insert("jane", "jane@example.com", []byte("digest-2"))
	require.NoError(t, err)

	require.Equal(t, 1, first.ID)
	require.Equal(t, 2, second.ID)
	require.Equal(t, 2, s.Count())
}

func TestInsertDuplicateEmail(t *testing.T) {
	s := New()

	_, err := s.Insert("john", "john@example.com", []byte("digest-1"))
	require.NoError(t, err)

	_, err = s.Insert("johnny", "john@example.com", []byte("digest-2"))
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.Equal(t, 1, s.Count())
}

func TestFindByEmailAndID(t *testing.T) {
	s := New()
	inserted, err := s.Insert("john", "john@example.com", []byte("digest"))
	require.NoError(t, err)

	byEmail, ok := s.FindByEmail("john@example.com")
	require.True(t, ok)
	require.Equal(t, inserted.ID, byEmail.ID)

	byID, ok := s.FindByID(inserted.ID)
	require.True(t, ok)
	require.Equal(t, "john@example.com", byID.Email)

	_, ok = s.FindByEmail("nobody@example.com")
	require.False(t, ok)
	_, ok = s.FindByID(999)
	require.False(t, ok)
}

func TestInsertConcurrentDuplicates(t *testing.T) {
	s := New()

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.Insert(fmt.Sprintf("user-%d", n), "same@example.com", []byte("digest"))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrDuplicateEmail)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, s.Count())
}

func TestSafeViewOmitsDigest(t *testing.T) {
	a := Account{ID: 7, Username: "john", Email: "john@example.com", PasswordDigest: []byte("digest")}
	view := a.SafeView()

	require.Equal(t, 7, view.ID)
	require.Equal(t, "john", view.Username)
	require.Equal(t, "john@example.com", view.Email)
}
