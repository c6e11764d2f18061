package activity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_IconAndColor(t *testing.T) {
	tests := []struct {
		kind  Kind
		icon  string
		color string
	}{
		{KindUpload, "UP", "bg-blue-100 text-blue-700"},
		{KindInterview, "IN", "bg-purple-100 text-purple-700"},
		{KindHire, "HI", "bg-green-100 text-green-700"},
		{KindReject, "RE", "bg-red-100 text-red-700"},
		{Kind("other"), "AC", "bg-gray-100 text-gray-700"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.icon, tt.kind.Icon())
			assert.Equal(t, tt.color, tt.kind.Color())
		})
	}
}

func TestFeed_NewestFirst(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	feed := NewFeed(Demo(now)...)

	require.NoError(t, feed.RecordActivity(ctx, Upload("batch.csv", "DevOps Engineer", now)))

	items, err := feed.ListActivities(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "batch.csv has been uploaded for role: DevOps Engineer", items[0].Description)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].At.After(items[i-1].At), "feed must be newest first")
	}

	limited, err := feed.ListActivities(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestFeed_AssignsID(t *testing.T) {
	ctx := context.Background()
	feed := NewFeed()
	require.NoError(t, feed.RecordActivity(ctx, Activity{Kind: KindHire, Title: "Candidate Hired", At: time.Now()}))

	items, err := feed.ListActivities(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEqual(t, uuid.Nil, items[0].ID)
}

func TestFeed_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	at := time.Now()
	feed := NewFeed()
	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, feed.RecordActivity(ctx, Activity{Title: title, At: at}))
	}
	items, err := feed.ListActivities(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, []string{items[0].Title, items[1].Title, items[2].Title})
}

func TestFeed_ConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	feed := NewFeed()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = feed.RecordActivity(ctx, Activity{Kind: KindUpload, At: time.Unix(int64(i), 0)})
		}(i)
	}
	wg.Wait()

	items, err := feed.ListActivities(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, items, 50)
	assert.Equal(t, int64(49), items[0].At.Unix())
}

func TestAgo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{2 * time.Hour, "2 hours ago"},
		{26 * time.Hour, "Yesterday"},
		{3 * 24 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ago(now.Add(-tt.ago), now))
	}
}
