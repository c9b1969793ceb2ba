package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/schedule"
	"github.com/riskibarqy/quiniela/internal/domain/team"
	"github.com/riskibarqy/quiniela/internal/domain/week"
)

const (
	DemoWeekID   = "demo-week"
	DemoWeekName = "Jornada Demo"
)

const demoSchedule = `Puebla vs Toluca viernes 19:00 14 2
Tijuana vs Juárez viernes 21:06
Pachuca vs Querétaro sábado 17:00
América vs Chivas sábado 19:07
Monterrey vs Tigres domingo 19:05`

// SeedWeeks builds a demo week whose kickoffs fall in the days after ref.
func SeedWeeks(ref time.Time, logos *team.Catalog) []week.Week {
	drafts := schedule.ParseText(demoSchedule, ref)
	matches := make([]match.Match, 0, len(drafts))
	for idx, draft := range drafts {
		item := match.FromDraft(fmt.Sprintf("%s-m%d", DemoWeekID, idx+1), DemoWeekID, draft)
		if logos != nil {
			item.HomeLogo, _ = logos.Logo(item.HomeTeam)
			item.AwayLogo, _ = logos.Logo(item.AwayTeam)
		}
		matches = append(matches, item)
	}

	return []week.Week{
		{
			ID:        DemoWeekID,
			Name:      DemoWeekName,
			Slug:      week.SlugFor(DemoWeekName),
			Status:    week.StatusOpen,
			CloseDate: week.EarliestKickoff(matches, ref.UTC()),
			Price:     50,
			CreatedAt: ref.UTC(),
			Matches:   matches,
		},
	}
}
