package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-signup/internal/model"
	"activity-signup/internal/repository"
)

func newRepo() *repository.MemoryRepo {
	return repository.NewMemoryRepo([]model.Activity{
		{Name: "Chess Club", Description: "d", Schedule: "s", MaxParticipants: 2, Participants: []string{"a@x.com"}},
		{Name: "Art Studio", Description: "d", Schedule: "s", MaxParticipants: 1},
	})
}

func TestMemoryRepo_AddParticipant(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		email    string
		wantErr  error
		want     []string
	}{
		{name: "Success", activity: "Chess Club", email: "b@x.com", want: []string{"a@x.com", "b@x.com"}},
		{name: "Fail: duplicate", activity: "Chess Club", email: "a@x.com", wantErr: repository.ErrAlreadySignedUp, want: []string{"a@x.com"}},
		{name: "Fail: unknown activity", activity: "Nope", email: "b@x.com", wantErr: repository.ErrActivityNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo()

			err := repo.AddParticipant(ctx, tt.activity, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			if tt.want != nil {
				a, err := repo.GetActivity(ctx, tt.activity)
				require.NoError(t, err)
				assert.Equal(t, tt.want, a.Participants)
			}
		})
	}
}

func TestMemoryRepo_RemoveParticipant(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	require.NoError(t, repo.AddParticipant(ctx, "Chess Club", "b@x.com"))
	require.NoError(t, repo.AddParticipant(ctx, "Chess Club", "c@x.com"))

	require.NoError(t, repo.RemoveParticipant(ctx, "Chess Club", "b@x.com"))
	a, err := repo.GetActivity(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "c@x.com"}, a.Participants)

	assert.ErrorIs(t, repo.RemoveParticipant(ctx, "Chess Club", "b@x.com"), repository.ErrParticipantNotFound)
	assert.ErrorIs(t, repo.RemoveParticipant(ctx, "Nope", "a@x.com"), repository.ErrActivityNotFound)
}

func TestMemoryRepo_ListReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	dir, err := repo.ListActivities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess Club", "Art Studio"}, dir.Names())

	require.NoError(t, repo.AddParticipant(ctx, "Chess Club", "b@x.com"))

	chess, _ := dir.Get("Chess Club")
	assert.Equal(t, []string{"a@x.com"}, chess.Participants, "snapshot must not observe later writes")
}

func TestLoadSeed_Default(t *testing.T) {
	seed, err := repository.LoadSeed("")
	require.NoError(t, err)
	require.Len(t, seed, 9)
	assert.Equal(t, "Basketball Team", seed[0].Name)
	assert.Equal(t, []string{"liam@mergington.edu", "ava@mergington.edu"}, seed[0].Participants)
	assert.Equal(t, 15, seed[0].MaxParticipants)
}

func TestParseSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing name", data: "- description: x\n  max_participants: 1\n"},
		{name: "duplicate", data: "- name: A\n- name: A\n"},
		{name: "negative capacity", data: "- name: A\n  max_participants: -1\n"},
		{name: "not a list", data: "name: A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repository.ParseSeed([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
