package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func testConfig() Config {
	return Config{
		Enabled: true,
		Rules: []Rule{
			{Method: "GET", Prefix: "/documents/", Limit: 60, Window: time.Minute, Burst: 2},
			{Method: "GET", Prefix: "/documents/pdf/", Limit: 0, Window: time.Minute},
		},
	}
}

func TestAllow_BurstThenRefill(t *testing.T) {
	c := &clock{now: time.Unix(1700000000, 0)}
	l := NewLimiter(testConfig(), c.Now)

	assert.True(t, l.Allow("1.2.3.4", "GET", "/documents/invoice").Allowed)
	assert.True(t, l.Allow("1.2.3.4", "GET", "/documents/proposal").Allowed)

	info := l.Allow("1.2.3.4", "GET", "/documents/invoice")
	require.False(t, info.Allowed)
	assert.Equal(t, 60, info.Limit)
	assert.Equal(t, time.Second, info.RetryAfter)

	c.now = c.now.Add(time.Second)
	assert.True(t, l.Allow("1.2.3.4", "GET", "/documents/invoice").Allowed)
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	c := &clock{now: time.Unix(1700000000, 0)}
	l := NewLimiter(testConfig(), c.Now)

	for i := 0; i < 2; i++ {
		l.Allow("a", "GET", "/documents/cv")
	}
	assert.False(t, l.Allow("a", "GET", "/documents/cv").Allowed)
	assert.True(t, l.Allow("b", "GET", "/documents/cv").Allowed)
}

func TestAllow_UnmatchedAndUnlimited(t *testing.T) {
	l := NewLimiter(testConfig(), nil)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("a", "GET", "/health").Allowed)
		assert.True(t, l.Allow("a", "GET", "/documents/pdf/x").Allowed)
	}
}

func TestAllow_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	l := NewLimiter(cfg, nil)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("a", "GET", "/documents/cv").Allowed)
	}
}

func TestPrune(t *testing.T) {
	c := &clock{now: time.Unix(1700000000, 0)}
	l := NewLimiter(testConfig(), c.Now)

	l.Allow("a", "GET", "/documents/cv")
	c.now = c.now.Add(30 * time.Minute)
	l.Allow("b", "GET", "/documents/cv")
	c.now = c.now.Add(31 * time.Minute)

	assert.Equal(t, 1, l.Prune(time.Hour))
	assert.Equal(t, 1, l.Prune(time.Minute))
}

func TestMatch_LongestPrefix(t *testing.T) {
	rules := testConfig().Rules

	r := Match("GET", "/documents/pdf/a", rules)
	require.NotNil(t, r)
	assert.Equal(t, "/documents/pdf/", r.Prefix)

	assert.Nil(t, Match("POST", "/documents/a", rules))
	assert.Nil(t, Match("GET", "/documents", rules))
}
