package cli

import (
	"context"
	"errors"
	"testing"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/raphaelgruber/mortydex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	titles map[string]string
	calls  []string
}

func (s *stubAPI) SearchCharacters(context.Context, string) ([]models.Character, error) {
	return nil, nil
}

func (s *stubAPI) EpisodeName(_ context.Context, u string) (string, error) {
	s.calls = append(s.calls, u)
	title, ok := s.titles[u]
	if !ok {
		return "", errors.New("not found")
	}
	return title, nil
}

// drive feeds each command's message back into the model until it quits,
// mimicking the bubbletea runtime without a terminal.
func drive(t *testing.T, m progressModel) progressModel {
	t.Helper()

	cmd := m.fetchEpisode(0)
	for i := 0; i < 100 && cmd != nil; i++ {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			break
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(progressModel)
	}
	return m
}

func TestProgressModelResolvesInOrder(t *testing.T) {
	api := &stubAPI{titles: map[string]string{"a": "Pilot", "b": "Lawnmower Dog", "c": "Anatomy Park"}}
	m := drive(t, newProgressModel(context.Background(), api, []string{"a", "b", "c"}))

	require.NoError(t, m.err)
	assert.True(t, m.done)
	assert.Equal(t, []string{"Pilot", "Lawnmower Dog", "Anatomy Park"}, m.titles)
	assert.Equal(t, []string{"a", "b", "c"}, api.calls)
	assert.Contains(t, m.renderContent(), "3 episodes resolved")
}

func TestProgressModelStopsOnFailure(t *testing.T) {
	api := &stubAPI{titles: map[string]string{"a": "Pilot", "c": "Anatomy Park"}}
	m := drive(t, newProgressModel(context.Background(), api, []string{"a", "b", "c"}))

	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "episode b")
	assert.Equal(t, []string{"a", "b"}, api.calls, "nothing after the failing episode is fetched")
	assert.Contains(t, m.renderContent(), "failed")
}

func TestProgressModelIgnoresUnknownMessages(t *testing.T) {
	m := newProgressModel(context.Background(), &stubAPI{}, []string{"a"})
	next, cmd := m.Update("noise")
	assert.Nil(t, cmd)
	assert.False(t, next.(progressModel).done)

	_, _ = m.Update(progress.FrameMsg{})
	assert.Contains(t, m.renderContent(), "0/1")
}

func TestProgressResolverEmpty(t *testing.T) {
	api := &stubAPI{}
	titles, err := progressResolver(api, nil)(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, titles)
	assert.Empty(t, api.calls)
}
