package idgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/idgen"
)

func TestNext(t *testing.T) {
	t.Run("Allocates prefixed monotonic ids per kind", func(t *testing.T) {
		seq := idgen.NewSequence()

		assert.Equal(t, "R1", seq.Next(idgen.KindRealm))
		assert.Equal(t, "R2", seq.Next(idgen.KindRealm))
		assert.Equal(t, "P1", seq.Next(idgen.KindCampaign))
		assert.Equal(t, "E1", seq.Next(idgen.KindEvent))
		assert.Equal(t, "C1", seq.Next(idgen.KindCharacter))
		assert.Equal(t, "R3", seq.Next(idgen.KindRealm))
	})

	t.Run("Kinds count independently", func(t *testing.T) {
		seq := idgen.NewSequence()

		seq.Next(idgen.KindEvent)
		seq.Next(idgen.KindEvent)
		assert.Equal(t, "P1", seq.Next(idgen.KindCampaign))
		assert.Equal(t, "E3", seq.Next(idgen.KindEvent))
	})
}

func TestCounters(t *testing.T) {
	t.Run("Reports the next unallocated value for every kind", func(t *testing.T) {
		seq := idgen.NewSequence()
		seq.Next(idgen.KindRealm)
		seq.Next(idgen.KindRealm)
		seq.Next(idgen.KindCharacter)

		counters := seq.Counters()
		assert.Equal(t, 3, counters["realm"])
		assert.Equal(t, 1, counters["campaign"])
		assert.Equal(t, 1, counters["event"])
		assert.Equal(t, 2, counters["char"])
	})

	t.Run("Returned map is a copy", func(t *testing.T) {
		seq := idgen.NewSequence()
		seq.Counters()["realm"] = 99

		assert.Equal(t, "R1", seq.Next(idgen.KindRealm))
	})
}

func TestSetCounters(t *testing.T) {
	t.Run("Restores counters so allocation resumes without reuse", func(t *testing.T) {
		seq := idgen.NewSequence()
		require.NoError(t, seq.SetCounters(map[string]int{
			"realm":    2,
			"campaign": 4,
			"event":    7,
			"char":     3,
		}))

		assert.Equal(t, "R2", seq.Next(idgen.KindRealm))
		assert.Equal(t, "P4", seq.Next(idgen.KindCampaign))
		assert.Equal(t, "E7", seq.Next(idgen.KindEvent))
		assert.Equal(t, "C3", seq.Next(idgen.KindCharacter))
	})

	t.Run("Missing kinds reset to 1", func(t *testing.T) {
		seq := idgen.NewSequence()
		seq.Next(idgen.KindRealm)
		seq.Next(idgen.KindRealm)

		require.NoError(t, seq.SetCounters(map[string]int{"event": 5}))
		assert.Equal(t, "R1", seq.Next(idgen.KindRealm))
		assert.Equal(t, "E5", seq.Next(idgen.KindEvent))
	})

	t.Run("Rejects counters below 1 and keeps state", func(t *testing.T) {
		seq := idgen.NewSequence()
		seq.Next(idgen.KindRealm)

		err := seq.SetCounters(map[string]int{"realm": 0})
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
		assert.Equal(t, "R2", seq.Next(idgen.KindRealm))
	})

	t.Run("Unknown kinds survive a round trip", func(t *testing.T) {
		seq := idgen.NewSequence()
		require.NoError(t, seq.SetCounters(map[string]int{"relic": 9}))

		assert.Equal(t, 9, seq.Counters()["relic"])
	})
}
