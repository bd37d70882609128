package conversation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulsync/orchestrator/internal/domain"
)

func TestTurnBandBoundaries(t *testing.T) {
	c := New("s1", "u1", "emotional_wellness")

	bands := []domain.TurnBand{
		domain.TurnBandEarly, // turn 1
		domain.TurnBandEarly, // turn 2
		domain.TurnBandMid,   // turn 3
		domain.TurnBandMid,   // turn 4
		domain.TurnBandMid,   // turn 5
		domain.TurnBandLater, // turn 6
		domain.TurnBandLater, // turn 7
	}
	for i, want := range bands {
		c.AppendUserMessage(fmt.Sprintf("message %d", i+1))
		if got := c.Band(); got != want {
			t.Errorf("turn %d: band = %s, want %s", i+1, got, want)
		}
	}
}

func TestResponseHistoryCap(t *testing.T) {
	c := New("s1", "u1", "room")
	for i := 0; i < 8; i++ {
		c.AppendUserMessage("hi")
		c.AppendAgentMessage(fmt.Sprintf("reply number %d. And more.", i))
	}

	openings := c.RecentOpenings()
	require.Len(t, openings, 3)
	assert.Equal(t, "reply number 5.", openings[0])
	assert.Equal(t, "reply number 7.", openings[2])
	assert.Len(t, c.responseHistory, 5)
}

func TestRecentOpeningsTruncation(t *testing.T) {
	c := New("s1", "u1", "room")
	c.AppendUserMessage("hi")
	long := "this opening sentence keeps going and going and going and going and going and going without any punctuation at all"
	c.AppendAgentMessage(long)

	openings := c.RecentOpenings()
	require.Len(t, openings, 1)
	assert.LessOrEqual(t, len([]rune(openings[0])), 80)
}

func TestEmojiBudget(t *testing.T) {
	c := New("s1", "u1", "room")
	assert.False(t, c.EmojiBudgetExhausted())

	c.AppendUserMessage("hi")
	c.AppendAgentMessage("that sounds really hard 💗")
	assert.True(t, c.EmojiBudgetExhausted())

	c.AppendUserMessage("thanks")
	c.AppendAgentMessage("no emoji here")
	assert.True(t, c.EmojiBudgetExhausted())
}

func TestPriorUserMessagesExcludesCurrent(t *testing.T) {
	c := New("s1", "u1", "room")
	c.AppendUserMessage("first")
	c.AppendAgentMessage("reply one")
	c.AppendUserMessage("second")
	c.AppendAgentMessage("reply two")
	c.AppendUserMessage("third")

	assert.Equal(t, []string{"first", "second"}, c.PriorUserMessages(3))
	assert.Equal(t, []string{"second"}, c.PriorUserMessages(1))
}

func TestWindowBounds(t *testing.T) {
	c := New("s1", "u1", "room")
	c.AppendUserMessage("one")
	c.AppendAgentMessage("two")
	c.AppendUserMessage("three")

	w := c.Window(2)
	require.Len(t, w, 2)
	assert.Equal(t, "two", w[0].Text)
	assert.Equal(t, "three", w[1].Text)
	assert.Len(t, c.Window(10), 3)
}

func TestContextSlotsResolveFromUserWording(t *testing.T) {
	c := New("s1", "u1", "room")
	assert.Equal(t, ContextSlots{}, c.ContextSlots())

	c.AppendUserMessage("the other kids bully me every day")
	assert.Equal(t, ContextSlots{}, c.ContextSlots())

	c.AppendUserMessage("it happens at school, in class")
	slots := c.ContextSlots()
	assert.True(t, slots.Setting)
	assert.True(t, slots.Age, "school wording places the user as a student")
	assert.False(t, slots.Support)

	c.AppendUserMessage("my best friend knows about it")
	assert.True(t, c.ContextSlots().Support)
}

func TestContextSlotsWorkWordingResolvesAge(t *testing.T) {
	c := New("s1", "u1", "room")
	c.AppendUserMessage("my boss keeps picking fights at work")
	slots := c.ContextSlots()
	assert.True(t, slots.Setting)
	assert.True(t, slots.Age)
}

func TestMarkContextAsked(t *testing.T) {
	c := New("s1", "u1", "room")
	c.MarkContextAsked("setting")
	c.MarkContextAsked("support")
	c.MarkContextAsked("bogus")

	slots := c.ContextSlots()
	assert.True(t, slots.Setting)
	assert.False(t, slots.Age)
	assert.True(t, slots.Support)
}

func TestRecentResponsesReturnsRetainedRing(t *testing.T) {
	c := New("s1", "u1", "room")
	for i := 0; i < 7; i++ {
		c.AppendUserMessage("hi")
		c.AppendAgentMessage(fmt.Sprintf("reply %d", i))
	}

	got := c.RecentResponses()
	require.Len(t, got, 5)
	assert.Equal(t, "reply 2", got[0])
	assert.Equal(t, "reply 6", got[4])
}

func TestManagerSerializesTurns(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conv, release := m.Acquire("s1", "u1", "room")
			defer release()
			conv.AppendUserMessage(fmt.Sprintf("msg %d", i))
			conv.AppendAgentMessage("ok")
		}(i)
	}
	wg.Wait()

	conv, release := m.Acquire("s1", "u1", "room")
	defer release()
	assert.Equal(t, 20, conv.TurnCount())
}
