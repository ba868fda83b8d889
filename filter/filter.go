// Package filter selects recent videos with expr-lang expressions, e.g.
//
//	Views > 10000 and daysSince(Published) < 30
//	lower(Title) contains "live" or Comments == 0
//	Title startsWith "Trailer" and hasText(Description, "4k")
//
// String matching uses the expr operators contains, startsWith, endsWith and
// matches, which are case sensitive. hasText is the case-insensitive form of
// contains.
//
// Unknown counters evaluate as -1 and an unknown publish time as the zero
// time. Use Views >= 0 to require a known count.
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/s0up4200/ytchannel/youtube"
)

// VideoFilter is a compiled video expression
type VideoFilter struct {
	expression string
	program    *vm.Program
	now        func() time.Time
}

// env is the evaluation environment. Field tags are the names visible to
// expressions.
type env struct {
	ID          string    `expr:"ID"`
	Title       string    `expr:"Title"`
	Description string    `expr:"Description"`
	Views       int64     `expr:"Views"`
	Likes       int64     `expr:"Likes"`
	Comments    int64     `expr:"Comments"`
	Published   time.Time `expr:"Published"`

	DaysSince func(time.Time) int       `expr:"daysSince"`
	DaysAgo   func(int) time.Time       `expr:"daysAgo"`
	HasText   func(string, string) bool `expr:"hasText"`
}

// Compile compiles an expression. The expression must evaluate to a bool.
func Compile(expression string) (*VideoFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression, expr.Env(env{}), expr.AsBool())
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	return &VideoFilter{
		expression: expression,
		program:    program,
		now:        time.Now,
	}, nil
}

// Match reports whether a single video satisfies the expression
func (f *VideoFilter) Match(video youtube.RecentVideo) (bool, error) {
	result, err := expr.Run(f.program, f.newEnv(video))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, VideoID: video.ID, Err: err}
	}
	matched, _ := result.(bool)
	return matched, nil
}

// Apply returns the videos that match, keeping their order. The first
// evaluation error aborts the whole selection.
func (f *VideoFilter) Apply(videos []youtube.RecentVideo) ([]youtube.RecentVideo, error) {
	selected := make([]youtube.RecentVideo, 0, len(videos))
	for _, video := range videos {
		ok, err := f.Match(video)
		if err != nil {
			return nil, err
		}
		if ok {
			selected = append(selected, video)
		}
	}
	return selected, nil
}

// String returns the original expression
func (f *VideoFilter) String() string {
	return f.expression
}

func (f *VideoFilter) newEnv(video youtube.RecentVideo) env {
	now := f.now
	e := env{
		ID:          video.ID,
		Title:       deref(video.Title),
		Description: deref(video.Description),
		Views:       counter(video.ViewCount),
		Likes:       counter(video.LikeCount),
		Comments:    counter(video.CommentCount),

		DaysSince: func(t time.Time) int {
			return int(now().Sub(t).Hours() / 24)
		},
		DaysAgo: func(days int) time.Time {
			return now().AddDate(0, 0, -days)
		},
		HasText: func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
	}
	if video.PublishedAt != nil {
		e.Published = *video.PublishedAt
	}
	return e
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func counter(n *int64) int64 {
	if n == nil {
		return -1
	}
	return *n
}
