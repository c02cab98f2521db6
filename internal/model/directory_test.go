package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-signup/internal/model"
)

func TestDirectory_UnmarshalKeepsOrder(t *testing.T) {
	body := `{
		"Zumba": {"description":"z","schedule":"s","max_participants":3,"participants":[]},
		"Art Studio": {"description":"a","schedule":"s","max_participants":2,"participants":["b@x.com","a@x.com"]},
		"Chess Club": {"description":"c","schedule":"s","max_participants":1,"participants":["a@x.com","b@x.com"]}
	}`

	var d model.Directory
	require.NoError(t, json.Unmarshal([]byte(body), &d))

	assert.Equal(t, []string{"Zumba", "Art Studio", "Chess Club"}, d.Names())

	art, ok := d.Get("Art Studio")
	require.True(t, ok)
	assert.Equal(t, []string{"b@x.com", "a@x.com"}, art.Participants)
	assert.Equal(t, 0, art.SpotsLeft())

	chess, _ := d.Get("Chess Club")
	assert.Equal(t, -1, chess.SpotsLeft())
}

func TestDirectory_UnmarshalRejectsNonObject(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "array", body: `[]`},
		{name: "string", body: `"nope"`},
		{name: "bad activity", body: `{"x": 5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d model.Directory
			assert.Error(t, json.Unmarshal([]byte(tt.body), &d))
		})
	}
}

func TestDirectory_MarshalWritesEmptyRoster(t *testing.T) {
	d := model.NewDirectory(
		model.Activity{Name: "B", Description: "d", Schedule: "s", MaxParticipants: 2},
		model.Activity{Name: "A", Description: "d", Schedule: "s", MaxParticipants: 1, Participants: []string{"x@y.z"}},
	)

	data, err := json.Marshal(d)
	require.NoError(t, err)

	assert.Equal(t,
		`{"B":{"description":"d","schedule":"s","max_participants":2,"participants":[]},`+
			`"A":{"description":"d","schedule":"s","max_participants":1,"participants":["x@y.z"]}}`,
		string(data))
}

func TestDirectory_PutReplacesInPlace(t *testing.T) {
	d := model.NewDirectory(
		model.Activity{Name: "A", MaxParticipants: 1},
		model.Activity{Name: "B", MaxParticipants: 1},
	)
	d.Put(model.Activity{Name: "A", MaxParticipants: 9})

	assert.Equal(t, []string{"A", "B"}, d.Names())
	a, _ := d.Get("A")
	assert.Equal(t, 9, a.MaxParticipants)
}
