package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/ytchannel/config"
	"github.com/s0up4200/ytchannel/youtube"
)

type fakeClient struct {
	profile  *youtube.ChannelProfile
	stats    *youtube.VideoStatistics
	page     *youtube.CommentPage
	all      []json.RawMessage
	resolved string
	err      error

	input       string
	profileOpts youtube.ProfileOptions
	pageSize    int
	pageToken   string
}

func (f *fakeClient) ResolveChannelID(_ context.Context, input string) (string, error) {
	f.input = input
	return f.resolved, f.err
}

func (f *fakeClient) GetChannelProfile(_ context.Context, input string, opts youtube.ProfileOptions) (*youtube.ChannelProfile, error) {
	f.input = input
	f.profileOpts = opts
	return f.profile, f.err
}

func (f *fakeClient) ListRecentVideos(context.Context, string, int) ([]youtube.RecentVideo, error) {
	return nil, f.err
}

func (f *fakeClient) GetVideoStatistics(_ context.Context, videoID string) (*youtube.VideoStatistics, error) {
	f.input = videoID
	return f.stats, f.err
}

func (f *fakeClient) ListComments(_ context.Context, videoID string, pageSize int, pageToken string) (*youtube.CommentPage, error) {
	f.input = videoID
	f.pageSize = pageSize
	f.pageToken = pageToken
	return f.page, f.err
}

func (f *fakeClient) GetAllComments(_ context.Context, videoID string, pageSize int) ([]json.RawMessage, error) {
	f.input = videoID
	f.pageSize = pageSize
	return f.all, f.err
}

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// execute runs the root command against fake with a clean flag state and
// returns what was written to stdout
func execute(t *testing.T, fake *fakeClient, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv("YOUTUBE_API_KEYS", "")
	t.Setenv("YOUTUBE_API_KEY", "test-key")

	resetFlags(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		resetFlags(c.Flags())
	}

	var gotKeys string
	prevClient, prevFs := newClient, outputFs
	newClient = func(cfg *config.Config, _ zerolog.Logger) (Client, error) {
		gotKeys = cfg.YouTube.APIKeys
		return fake, nil
	}
	outputFs = afero.NewMemMapFs()
	t.Cleanup(func() {
		newClient, outputFs = prevClient, prevFs
		client = nil
	})

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		require.NotEmpty(t, gotKeys)
	}
	return stdout.String(), err
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }

func TestChannelCommand(t *testing.T) {
	profile := func() *youtube.ChannelProfile {
		return &youtube.ChannelProfile{
			ID:        "UC123",
			Title:     strPtr("Test Channel"),
			ViewCount: int64Ptr(1000),
			RecentVideos: []youtube.RecentVideo{
				{ID: "v1", Title: strPtr("Popular"), ViewCount: int64Ptr(50000)},
				{ID: "v2", Title: strPtr("Quiet"), ViewCount: int64Ptr(10)},
			},
		}
	}

	t.Run("handle with json output", func(t *testing.T) {
		fake := &fakeClient{profile: profile()}
		out, err := execute(t, fake, "channel", "--handle", "YouTube")
		require.NoError(t, err)

		assert.Equal(t, "@YouTube", fake.input)
		assert.False(t, fake.profileOpts.IncludeRecentVideos)
		assert.Equal(t, 5, fake.profileOpts.MaxVideos)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "UC123", decoded["id"])
		assert.Nil(t, decoded["subscriber_count"])
	})

	t.Run("url with videos and filter", func(t *testing.T) {
		fake := &fakeClient{profile: profile()}
		out, err := execute(t, fake, "channel",
			"--url", "https://www.youtube.com/channel/UC123/videos",
			"--include-videos", "--max-videos", "10",
			"--video-filter", "Views > 1000",
			"--format", "tree")
		require.NoError(t, err)

		assert.Equal(t, "UC123", fake.input)
		assert.True(t, fake.profileOpts.IncludeRecentVideos)
		assert.Equal(t, 10, fake.profileOpts.MaxVideos)
		assert.Contains(t, out, "Popular (v1)")
		assert.NotContains(t, out, "Quiet")
		assert.Contains(t, out, "Recent Video (1):")
	})

	t.Run("filter requires videos", func(t *testing.T) {
		_, err := execute(t, &fakeClient{profile: profile()}, "channel", "--id", "UC123", "--video-filter", "Views > 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--include-videos")
	})

	t.Run("invalid filter", func(t *testing.T) {
		_, err := execute(t, &fakeClient{profile: profile()}, "channel", "--id", "UC123", "--include-videos", "--video-filter", "Views >")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid video filter")
	})

	t.Run("inputs are exclusive", func(t *testing.T) {
		_, err := execute(t, &fakeClient{}, "channel", "--id", "UC123", "--handle", "@x")
		require.Error(t, err)
	})

	t.Run("an input is required", func(t *testing.T) {
		_, err := execute(t, &fakeClient{}, "channel")
		require.Error(t, err)
	})

	t.Run("client errors are returned", func(t *testing.T) {
		fake := &fakeClient{err: &youtube.NotFoundError{Resource: "channel", Input: "UCmissing"}}
		_, err := execute(t, fake, "channel", "--id", "UCmissing")
		require.ErrorIs(t, err, youtube.ErrNotFound)
	})

	t.Run("keys flag overrides env", func(t *testing.T) {
		fake := &fakeClient{profile: profile()}
		_, err := execute(t, fake, "channel", "--id", "UC123", "--keys", "k1,k2")
		require.NoError(t, err)
		assert.Equal(t, "k1,k2", cfg.YouTube.APIKeys)
	})
}

func TestCommentsCommand(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		fake := &fakeClient{page: &youtube.CommentPage{
			Items:         []json.RawMessage{json.RawMessage(`{"id":"c1"}`)},
			NextPageToken: "next",
		}}
		out, err := execute(t, fake, "comments", "vid1", "--page-size", "20", "--page-token", "tok")
		require.NoError(t, err)

		assert.Equal(t, "vid1", fake.input)
		assert.Equal(t, 20, fake.pageSize)
		assert.Equal(t, "tok", fake.pageToken)
		assert.JSONEq(t, `{"items":[{"id":"c1"}],"next_page_token":"next"}`, out)
	})

	t.Run("all pages", func(t *testing.T) {
		fake := &fakeClient{all: []json.RawMessage{
			json.RawMessage(`{"id":"c1"}`),
			json.RawMessage(`{"id":"c2"}`),
		}}
		out, err := execute(t, fake, "comments", "vid1", "--all")
		require.NoError(t, err)

		assert.Equal(t, 100, fake.pageSize)
		assert.JSONEq(t, `[{"id":"c1"},{"id":"c2"}]`, out)
	})

	t.Run("page size bounds", func(t *testing.T) {
		_, err := execute(t, &fakeClient{}, "comments", "vid1", "--page-size", "101")
		require.Error(t, err)
	})

	t.Run("video id is required", func(t *testing.T) {
		_, err := execute(t, &fakeClient{}, "comments")
		require.Error(t, err)
	})
}

func TestStatsCommand(t *testing.T) {
	fake := &fakeClient{stats: &youtube.VideoStatistics{ViewCount: int64Ptr(1234)}}
	out, err := execute(t, fake, "stats", "vid1", "--format", "table")
	require.NoError(t, err)

	assert.Equal(t, "vid1", fake.input)
	assert.Contains(t, out, "VIEWS")
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "N/A")
}

func TestResolveCommand(t *testing.T) {
	fake := &fakeClient{resolved: "UCabc"}
	out, err := execute(t, fake, "resolve", "https://youtube.com/@someone")
	require.NoError(t, err)

	assert.Equal(t, "@someone", fake.input)
	assert.JSONEq(t, `{"input":"https://youtube.com/@someone","channel_id":"UCabc"}`, out)
}

func TestOutputFlagWritesFile(t *testing.T) {
	fake := &fakeClient{stats: &youtube.VideoStatistics{ViewCount: int64Ptr(1)}}
	out, err := execute(t, fake, "stats", "vid1", "--output", "reports/stats.json", "--pretty")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := afero.ReadFile(outputFs, "reports/stats.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"view_count\": 1,\n  \"like_count\": null,\n  \"comment_count\": null\n}\n", string(data))
}

func TestMissingKeys(t *testing.T) {
	_, err := execute(t, &fakeClient{}, "stats", "vid1")
	require.NoError(t, err)

	t.Setenv("YOUTUBE_API_KEY", "")
	resetFlags(rootCmd.PersistentFlags())
	rootCmd.SetArgs([]string{"stats", "vid1"})
	err = rootCmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, config.ErrNoAPIKeys)
}

func TestParseChannelURL(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "https://www.youtube.com/channel/UCxyz_-1", want: "UCxyz_-1"},
		{input: "youtube.com/channel/UCxyz/videos", want: "UCxyz"},
		{input: "https://www.youtube.com/@handle", want: "@handle"},
		{input: "https://m.youtube.com/@handle/shorts?x=1", want: "@handle"},
		{input: "https://www.youtube.com/@caf%C3%A9", want: "@café"},
		{input: "@direct", want: "@direct"},
		{input: "UCbare", want: "UCbare"},
		{input: "https://www.youtube.com/c/legacy", wantErr: true},
		{input: "https://www.youtube.com/@", wantErr: true},
		{input: "https://www.youtube.com/channel/notanid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseChannelURL(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, youtube.ErrUnresolvableIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetVersion(t *testing.T) {
	prevVersion, prevCmdVersion := appVersion, rootCmd.Version
	t.Cleanup(func() {
		appVersion, rootCmd.Version = prevVersion, prevCmdVersion
	})

	assert.Equal(t, "ytchannel/"+prevVersion, userAgent())

	SetVersion("1.2.3", "2024-06-01")
	assert.Equal(t, "1.2.3", rootCmd.Version)
	assert.Equal(t, "ytchannel/1.2.3", userAgent())
}

func TestNewClientFromConfig(t *testing.T) {
	c, err := newClient(&config.Config{YouTube: config.YouTubeConfig{
		APIKeys:     "k1,k2",
		BaseURL:     "http://localhost:8080",
		Timeout:     time.Second,
		MaxAttempts: 2,
		BackoffUnit: time.Millisecond,
	}}, zerolog.Nop())
	require.NoError(t, err)

	yt, ok := c.(*youtube.Client)
	require.True(t, ok)
	assert.Equal(t, 2, yt.Keys().Len())
}

func TestFlagOverrides(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&apiKeys, "keys", "", "")
	cmd.Flags().StringVar(&format, "format", "", "")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "")

	assert.Empty(t, flagOverrides(cmd))

	require.NoError(t, cmd.Flags().Parse([]string{"--keys", "a,b", "--pretty", "--log-level", "DEBUG"}))
	assert.Equal(t, map[string]any{
		"youtube.api_keys": "a,b",
		"output.pretty":    true,
		"logging.level":    "debug",
	}, flagOverrides(cmd))
}
