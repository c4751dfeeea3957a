package hydrate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loqui/loqui-go/internal/types"
)

func TestNilSlicesBecomeEmptyAndNilEntriesDropped(t *testing.T) {
	t.Parallel()
	cats := Categories([]*types.Category{
		nil,
		{ID: "c1", Name: "General", Children: []*types.Category{nil, {ID: "c2", Name: "Sub"}}},
	})

	require.Len(t, cats, 1)
	c := cats[0]
	require.NotNil(t, c.Tags)
	assert.Empty(t, c.Tags)
	require.Len(t, c.Children, 1)
	assert.Equal(t, "c2", c.Children[0].ID)
	require.NotNil(t, c.Children[0].Tags)
}

func TestMissingCreatorDefaultsToUnknown(t *testing.T) {
	t.Parallel()
	m := Message(&types.Message{ID: "m1", Content: "hi"}, nil)
	require.NotNil(t, m.CreatedBy)
	assert.True(t, m.CreatedBy.IsUnknown())
	assert.Equal(t, types.UnknownUserName, m.CreatedBy.Name)
}

func TestContextualCreatorFillsOmittedReferences(t *testing.T) {
	t.Parallel()
	alice := &types.User{ID: "0e3b7a10-1111-2222-3333-444455556666", Name: "Alice"}
	bob := &types.User{ID: "9f3b7a10-aaaa-bbbb-cccc-ddddeeeeffff", Name: "Bob"}

	ms := Messages([]*types.Message{
		{ID: "m1"},
		{ID: "m2", CreatedBy: bob}, // embedded record wins over context
	}, alice)

	assert.Same(t, alice, ms[0].CreatedBy)
	assert.Same(t, bob, ms[1].CreatedBy)
}

func TestContextualCreatorDoesNotLeakIntoNestedSubtrees(t *testing.T) {
	t.Parallel()
	alice := &types.User{ID: "0e3b7a10-1111-2222-3333-444455556666", Name: "Alice"}

	m := Message(&types.Message{
		ID:       "m1",
		Comments: []*types.Comment{{ID: "cm1"}},
	}, alice)

	assert.Same(t, alice, m.CreatedBy)
	// The comment's creator is unrelated to the message's context.
	assert.True(t, m.Comments[0].CreatedBy.IsUnknown())
}

func TestAbsentLatestMessageBecomesPlaceholder(t *testing.T) {
	t.Parallel()
	th := Thread(&types.Thread{ID: "t1", Title: "hello"}, nil)

	lm := th.LatestMessage
	require.NotNil(t, lm)
	assert.Empty(t, lm.ID)
	assert.Empty(t, lm.Content)
	assert.True(t, lm.CreatedAt.IsZero())
	assert.True(t, lm.Approved)
	require.NotNil(t, lm.CreatedBy)
	assert.True(t, lm.CreatedBy.IsUnknown())
}

func TestPlaceholderCreatorUsesContext(t *testing.T) {
	t.Parallel()
	alice := &types.User{ID: "0e3b7a10-1111-2222-3333-444455556666", Name: "Alice"}
	th := Thread(&types.Thread{ID: "t1"}, alice)
	assert.Same(t, alice, th.LatestMessage.CreatedBy)
	assert.Same(t, alice, th.CreatedBy)
}

func TestIdempotence(t *testing.T) {
	t.Parallel()
	raw := `[
		{"threadId":"t1","title":"first","tags":[null,{"tagId":"g1","name":"go"}],
		 "latestMessage":{"messageId":"m9","content":"latest","approved":true}},
		{"threadId":"t2","title":"second"}
	]`
	var ts []*types.Thread
	require.NoError(t, json.Unmarshal([]byte(raw), &ts))

	once := Threads(ts, nil)
	snapshot, err := json.Marshal(once)
	require.NoError(t, err)

	twice := Threads(once, nil)
	again, err := json.Marshal(twice)
	require.NoError(t, err)

	assert.JSONEq(t, string(snapshot), string(again), "normalizing a normalized graph must change nothing")
}

func TestCyclicGraphTerminates(t *testing.T) {
	t.Parallel()
	parent := &types.Category{ID: "p", Name: "Parent"}
	child := &types.Category{ID: "c", Name: "Child", Parent: parent}
	parent.Children = []*types.Category{child}

	// Must not recurse forever.
	cats := Categories([]*types.Category{parent})
	require.Len(t, cats, 1)
	assert.NotNil(t, cats[0].Children[0].CreatedBy)
}

func TestPrivateMessageEndpointsFilled(t *testing.T) {
	t.Parallel()
	pms := PrivateMessages([]*types.PrivateMessage{{ID: "pm1", Subject: "hey"}})
	require.Len(t, pms, 1)
	assert.True(t, pms[0].From.IsUnknown())
	assert.True(t, pms[0].To.IsUnknown())
	require.NotNil(t, pms[0].Attachments)
}
