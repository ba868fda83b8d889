package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/ytchannel/youtube"
)

var fixedNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func video(id, title string, views int64, published time.Time) youtube.RecentVideo {
	return youtube.RecentVideo{
		ID:          id,
		Title:       &title,
		ViewCount:   &views,
		PublishedAt: &published,
	}
}

func mustCompile(t *testing.T, expression string) *VideoFilter {
	t.Helper()
	f, err := Compile(expression)
	require.NoError(t, err)
	f.now = func() time.Time { return fixedNow }
	return f
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{name: "valid expression", expression: `Views > 1000`},
		{name: "helpers", expression: `hasText(Title, "live") and daysSince(Published) < 30`},
		{name: "string operators", expression: `lower(Title) contains "live" or Title startsWith "A" or Title endsWith "z"`},
		{name: "matches operator", expression: `Description matches "^(?i)official"`},
		{name: "empty expression", expression: "  ", wantErr: true, errContains: "empty expression"},
		{name: "invalid syntax", expression: `Title contains "unclosed`, wantErr: true},
		{name: "unknown field", expression: `Rating > 3`, wantErr: true},
		{name: "not a bool", expression: `Views + 1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotNil(t, f)
				return
			}

			require.Error(t, err)
			var compErr *CompilationError
			require.ErrorAs(t, err, &compErr)
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}

func TestVideoFilter_Match(t *testing.T) {
	recent := video("v1", "Live Stream Highlights", 5000, fixedNow.AddDate(0, 0, -3))

	tests := []struct {
		name       string
		expression string
		video      youtube.RecentVideo
		want       bool
	}{
		{name: "views above", expression: `Views > 1000`, video: recent, want: true},
		{name: "views below", expression: `Views > 10000`, video: recent, want: false},
		{name: "case insensitive hasText", expression: `hasText(Title, "live")`, video: recent, want: true},
		{name: "contains is case sensitive", expression: `Title contains "live"`, video: recent, want: false},
		{name: "contains on lowered title", expression: `lower(Title) contains "live"`, video: recent, want: true},
		{name: "starts with", expression: `Title startsWith "Live Stream"`, video: recent, want: true},
		{name: "ends with", expression: `upper(Title) endsWith "HIGHLIGHTS"`, video: recent, want: true},
		{name: "matches", expression: `Title matches "(?i)^live"`, video: recent, want: true},
		{name: "recent", expression: `daysSince(Published) <= 7`, video: recent, want: true},
		{name: "published after", expression: `Published > daysAgo(2)`, video: recent, want: false},
		{name: "id", expression: `ID == "v1"`, video: recent, want: true},
		{name: "unknown views", expression: `Views >= 0`, video: youtube.RecentVideo{ID: "v2"}, want: false},
		{name: "unknown title", expression: `Title == ""`, video: youtube.RecentVideo{ID: "v2"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustCompile(t, tt.expression)

			got, err := f.Match(tt.video)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVideoFilter_Apply(t *testing.T) {
	videos := []youtube.RecentVideo{
		video("a", "Tutorial part 1", 100, fixedNow.AddDate(0, 0, -1)),
		video("b", "Live Q&A", 20000, fixedNow.AddDate(0, 0, -40)),
		video("c", "Tutorial part 2", 15000, fixedNow.AddDate(0, 0, -2)),
	}

	f := mustCompile(t, `Views > 1000 or Title endsWith "part 1"`)
	selected, err := f.Apply(videos)
	require.NoError(t, err)

	ids := make([]string, 0, len(selected))
	for _, v := range selected {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	f = mustCompile(t, `daysSince(Published) < 30 and Views > 1000`)
	selected, err = f.Apply(videos)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "c", selected[0].ID)

	selected, err = f.Apply(nil)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestVideoFilter_String(t *testing.T) {
	f := mustCompile(t, `  Views > 1  `)
	assert.Equal(t, "Views > 1", f.String())
}

func TestEvaluationError(t *testing.T) {
	err := &EvaluationError{Expression: "Views > 1", VideoID: "v1", Err: assert.AnError}
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "v1")
}
