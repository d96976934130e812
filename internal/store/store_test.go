// FilePath: internal/store/store_test.go
package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nakib00/IoT-project-Server/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "users.json"))
}

func TestReadMissingFile(t *testing.T) {
	s := newTestStore(t)

	users := s.Read()
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestReadEmptyFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte{}, 0o644))

	users := s.Read()
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestReadCorruptFileRecovers(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"this is": not json`), 0o644))

	recovered := make(chan struct{}, 1)
	s.Events().On(EventCorruptionRecovered, "store_test", func(err error) {
		select {
		case recovered <- struct{}{}:
		default:
		}
	})

	users := s.Read()
	require.NotNil(t, users)
	require.Empty(t, users)

	select {
	case <-recovered:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a corruption recovery event")
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(func(users []*models.User) ([]*models.User, error) {
		return append(users, &models.User{ID: "usr_1", Name: "Ada", Email: "ada@example.com"}), nil
	})
	require.NoError(t, err)

	// A fresh store on the same path must see the persisted document.
	reopened := New(s.Path())
	users := reopened.Read()
	require.Len(t, users, 1)
	require.Equal(t, "usr_1", users[0].ID)
	require.Equal(t, "ada@example.com", users[0].Email)
}

func TestUpdateMutateErrorAbortsWrite(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Update(func(users []*models.User) ([]*models.User, error) {
		return append(users, &models.User{ID: "usr_1"}), nil
	}))

	boom := os.ErrInvalid
	err := s.Update(func(users []*models.User) ([]*models.User, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	users := s.Read()
	require.Len(t, users, 1)
}

func TestUpdateSerializesConcurrentMutations(t *testing.T) {
	s := newTestStore(t)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			err := s.Update(func(users []*models.User) ([]*models.User, error) {
				return append(users, &models.User{}), nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	// Every append must survive; lost updates would leave fewer users.
	require.Len(t, s.Read(), writers)
}
