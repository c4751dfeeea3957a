package loqui

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loqui/loqui-go/internal/wire"
)

const prefix = wire.PayloadPrefix

func TestListMessagesByUserFillsContextualCreator(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// createdBy deliberately omitted: authorship is implied by the route.
		fmt.Fprint(w, prefix+`{"messages":[
			{"messageId":"m1","content":"first","approved":true},
			{"messageId":"m2","content":"second","approved":true}
		]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	alice := &User{ID: "0E3B7A10-1111-2222-3333-444455556666", Name: "Alice"}

	msgs, err := c.ListMessagesByUser(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Same(t, alice, m.CreatedBy)
	}

	// Harvest during the call warmed the identity cache, under any
	// rendering of the id.
	got, ok := c.UserByID("0e3b7a10111122223333444455556666")
	require.True(t, ok)
	assert.Same(t, alice, got)
}

func TestOmittedCreatorDoesNotShadowRealUnknownUser(t *testing.T) {
	t.Parallel()
	var lookups int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/threads":
			// createdBy omitted; hydration fills in the placeholder.
			fmt.Fprint(w, prefix+`{"threads":[{"threadId":"t1","title":"hello"}]}`)
		case "/users/find":
			atomic.AddInt32(&lookups, 1)
			fmt.Fprint(w, prefix+`{"user":{"userId":"dddddddd-0000-0000-0000-000000000004","name":"Unknown"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	threads, err := c.ListThreads(context.Background(), ListThreadsOptions{})
	require.NoError(t, err)
	require.Len(t, threads, 1)
	require.NotNil(t, threads[0].CreatedBy)
	assert.Equal(t, UnknownUserName, threads[0].CreatedBy.Name)

	// The placeholder never enters the identity cache, so a real account
	// whose display name is "Unknown" still resolves through the server.
	_, ok := c.UserByID(threads[0].CreatedBy.ID)
	assert.False(t, ok)
	u, err := c.UserByName(context.Background(), "Unknown")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "dddddddd-0000-0000-0000-000000000004", u.ID)
	assert.EqualValues(t, 1, atomic.LoadInt32(&lookups))
}

func TestGetThreadNotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, prefix+`{"status":5}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	_, err := c.GetThread(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Not found")
}

func TestMutationsShareOneTokenFetch(t *testing.T) {
	t.Parallel()
	var tokenFetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/csrf-token":
			atomic.AddInt32(&tokenFetches, 1)
			fmt.Fprint(w, prefix+`{"token":"tok-abc"}`)
		default:
			if r.Method == http.MethodPost {
				assert.Equal(t, "tok-abc", r.Header.Get("X-CSRF-Token"))
			}
			fmt.Fprint(w, prefix+`{"message":{"messageId":"m1","content":"ok","approved":true}}`)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	c.GrantCookieConsent()

	for i := 0; i < 3; i++ {
		_, err := c.PostMessage(context.Background(), "t1", PostMessageRequest{Content: "hi"})
		require.NoError(t, err)
	}
	// One eager fetch at consent time, reused by every mutation after.
	assert.EqualValues(t, 1, atomic.LoadInt32(&tokenFetches))
}

func TestNoTokenBeforeConsent(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/csrf-token" {
			t.Error("token must not be fetched before consent")
		}
		assert.Empty(t, r.Header.Get("X-CSRF-Token"))
		fmt.Fprint(w, prefix+`{"message":{"messageId":"m1","approved":true}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	_, err := c.PostMessage(context.Background(), "t1", PostMessageRequest{Content: "hi"})
	require.NoError(t, err)
}

func TestCategoryListServedFromCache(t *testing.T) {
	t.Parallel()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, prefix+`{"categories":[{"categoryId":"c1","name":"General"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	for i := 0; i < 3; i++ {
		cats, err := c.ListCategories(context.Background())
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "General", cats[0].Name)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestUserByNameRoundTrip(t *testing.T) {
	t.Parallel()
	var lookups int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/find", r.URL.Path)
		atomic.AddInt32(&lookups, 1)
		fmt.Fprint(w, prefix+`{"user":{"userId":"aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee","name":"Eve"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	u, err := c.UserByName(context.Background(), "Eve")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Eve", u.Name)

	// Second call is a cache read.
	_, err = c.UserByName(context.Background(), "eve")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&lookups))
}

func TestNewPanicsOnEmptyBaseURL(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New("") })
}
