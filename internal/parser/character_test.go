package parser

import (
	"testing"

	"github.com/raphaelgruber/mortydex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCharactersWithoutResults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing results", `{"info":{"count":0}}`},
		{"null results", `{"results":null}`},
		{"results is object", `{"results":{"name":"Rick"}}`},
		{"results is string", `{"results":"Rick"}`},
		{"api error body", `{"error":"There is nothing here"}`},
		{"top level array", `[{"name":"Rick"}]`},
		{"malformed", `{"results":[`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCharacters([]byte(tt.body))
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestParseCharactersEmptyResults(t *testing.T) {
	got := ParseCharacters([]byte(`{"results":[]}`))
	assert.Empty(t, got)
}

func TestParseCharactersFullRecord(t *testing.T) {
	body := `{
		"info": {"count": 1},
		"results": [{
			"id": 1,
			"name": "Rick Sanchez",
			"status": "Alive",
			"species": "Human",
			"origin": {"name": "Earth (C-137)", "url": "https://rickandmortyapi.com/api/location/1"},
			"episode": [
				"https://rickandmortyapi.com/api/episode/1",
				"https://rickandmortyapi.com/api/episode/2",
				"https://rickandmortyapi.com/api/episode/3"
			]
		}]
	}`

	got := ParseCharacters([]byte(body))
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "Rick Sanchez", c.Name)
	assert.Equal(t, "Alive", c.Status)
	assert.Equal(t, "Human", c.Species)
	assert.Equal(t, "Earth (C-137)", c.Origin)
	assert.Equal(t, []string{
		"https://rickandmortyapi.com/api/episode/1",
		"https://rickandmortyapi.com/api/episode/2",
		"https://rickandmortyapi.com/api/episode/3",
	}, c.Episodes)
}

func TestParseCharactersDefaults(t *testing.T) {
	tests := []struct {
		name string
		item string
		want models.Character
	}{
		{
			name: "all fields missing",
			item: `{}`,
			want: models.Character{Name: models.Unknown, Origin: models.Unknown, Species: models.UnknownSpecies, Status: models.Unknown, Episodes: []string{}},
		},
		{
			name: "wrong types",
			item: `{"name": 42, "status": true, "species": null}`,
			want: models.Character{Name: models.Unknown, Origin: models.Unknown, Species: models.UnknownSpecies, Status: models.Unknown, Episodes: []string{}},
		},
		{
			name: "origin is a string",
			item: `{"name": "Morty", "origin": "Earth"}`,
			want: models.Character{Name: "Morty", Origin: models.Unknown, Species: models.UnknownSpecies, Status: models.Unknown, Episodes: []string{}},
		},
		{
			name: "origin object without name",
			item: `{"name": "Morty", "origin": {"url": ""}}`,
			want: models.Character{Name: "Morty", Origin: models.Unknown, Species: models.UnknownSpecies, Status: models.Unknown, Episodes: []string{}},
		},
		{
			name: "episode is not a list",
			item: `{"name": "Summer", "episode": "https://example.com/episode/1"}`,
			want: models.Character{Name: "Summer", Origin: models.Unknown, Species: models.UnknownSpecies, Status: models.Unknown, Episodes: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCharacters([]byte(`{"results":[` + tt.item + `]}`))
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestParseCharactersPreservesOrder(t *testing.T) {
	body := `{"results":[
		{"name":"Rick Sanchez","episode":["e/3","e/1","e/2"]},
		{"name":"Toxic Rick"},
		{"name":"Doofus Rick","episode":[]}
	]}`

	got := ParseCharacters([]byte(body))
	require.Len(t, got, 3)

	assert.Equal(t, "Rick Sanchez", got[0].Name)
	assert.Equal(t, "Toxic Rick", got[1].Name)
	assert.Equal(t, "Doofus Rick", got[2].Name)

	assert.Equal(t, []string{"e/3", "e/1", "e/2"}, got[0].Episodes)
	assert.Len(t, got[1].Episodes, 0)
	assert.Len(t, got[2].Episodes, 0)
}

func TestParseEpisodeName(t *testing.T) {
	name, err := ParseEpisodeName([]byte(`{"name": "Pilot"}`))
	require.NoError(t, err)
	assert.Equal(t, "Pilot", name)

	name, err = ParseEpisodeName([]byte(`{"id":28,"name":"The Ricklantis Mixup","episode":"S03E07"}`))
	require.NoError(t, err)
	assert.Equal(t, "The Ricklantis Mixup", name)
}

func TestParseEpisodeNameErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"name":`},
		{"missing name", `{"id": 1}`},
		{"numeric name", `{"name": 1}`},
		{"null name", `{"name": null}`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEpisodeName([]byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEpisodeDecode)
		})
	}
}
