//nolint:testpackage // Testing internal moderation requires same package access
package moderation

import (
	"context"
	"errors"

	"github.com/careerpath/advisor/internal/mlclient"
)

// fakeToxicity returns a canned result or error.
type fakeToxicity struct {
	result *mlclient.ToxicityResult
	err    error
	calls  int
}

func (f *fakeToxicity) ClassifyToxicity(_ context.Context, _ string) (*mlclient.ToxicityResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeZeroShot returns canned scores or an error, recording the text sent.
type fakeZeroShot struct {
	scores  map[string]float64
	err     error
	gotText string
}

func (f *fakeZeroShot) ClassifyZeroShot(
	_ context.Context,
	text string,
	_ []string,
	_ string,
) (map[string]float64, error) {
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

var errModelDown = errors.New("model down")

// onTopicScores gives the on-topic labels a comfortably passing score.
func onTopicScores() map[string]float64 {
	return map[string]float64{
		"career or job experience in tech":    0.62,
		"interview preparation or job search": 0.20,
		"professional growth or learning":     0.10,
		"unrelated personal topic":            0.05,
		"advertising or promotion":            0.03,
	}
}

// offTopicScores gives every on-topic label a failing score.
func offTopicScores() map[string]float64 {
	return map[string]float64{
		"career or job experience in tech":    0.10,
		"interview preparation or job search": 0.08,
		"professional growth or learning":     0.07,
		"unrelated personal topic":            0.60,
		"advertising or promotion":            0.15,
	}
}
