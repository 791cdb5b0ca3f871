package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/beautybox/salon-api/internal/model"
)

func TestParseSchedule(t *testing.T) {
	today := time.Now().Format(model.DateLayout)

	tests := []struct {
		name       string
		preference string
		want       Schedule
	}{
		{
			name:       "well formed",
			preference: "2026-09-05 a las 16:30",
			want:       Schedule{Date: "2026-09-05", Time: "16:30", Parsed: true},
		},
		{
			name:       "surrounding whitespace",
			preference: " 2026-09-05 a las 16:30 ",
			want:       Schedule{Date: "2026-09-05", Time: "16:30", Parsed: true},
		},
		{
			name:       "free text",
			preference: "por la tarde",
			want:       Schedule{Date: today, Time: "10:00"},
		},
		{
			name:       "bad date half",
			preference: "mañana a las 16:30",
			want:       Schedule{Date: today, Time: "10:00"},
		},
		{
			name:       "bad time half",
			preference: "2026-09-05 a las tardecita",
			want:       Schedule{Date: today, Time: "10:00"},
		},
		{
			name:       "empty",
			preference: "",
			want:       Schedule{Date: today, Time: "10:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSchedule(tt.preference))
		})
	}
}

func TestMatchTokens(t *testing.T) {
	// Short connectives drop out; order is preserved.
	assert.Equal(t, []string{"laminado", "cejas", "especial"},
		matchTokens("laminado de las cejas especial"))
	assert.Empty(t, matchTokens("de la con"))
}
