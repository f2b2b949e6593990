package kiwi

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests header materialization.
func TestAuthHeader(t *testing.T) {
	s := &sessionManager{}
	assert.Equal(t, 0, len(s.authHeader()), "empty header")
	assert.Nil(t, s.current(), "no session")

	s.session = &Session{SessionKey: "XYZ"}
	assert.Equal(t, "XYZ", s.authHeader().Get(sessionKeyHeader), "header")

	c := s.current()
	c.SessionKey = "changed"
	assert.Equal(t, "XYZ", s.current().SessionKey, "copy")
}

// Tests concurrent logins and reads.
func TestSessionConcurrentAccess(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	c := getClient(t, f)

	wg := sync.WaitGroup{}
	for ii := 0; ii < 5; ii++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := c.Login(context.Background())
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := c.GetSensorList(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.NotNil(t, c.Session())
	assert.Equal(t, "XYZ", c.Session().SessionKey)
}
