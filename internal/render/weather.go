package render

import (
	"strings"
	"time"

	"github.com/hollis/daybook/internal/models"
)

// Weather renders a daily forecast table. API values arrive metric and
// are converted for display: F = C*9/5+32, mph = km/h*0.621371,
// inches = mm*0.0393701, all rounded to one decimal; precipitation
// chance is shown as an integer percentage.
func Weather(recs []models.DatedRecord, now time.Time) Section {
	marker := models.KindWeather.Marker()

	var rows []string
	for _, r := range recs {
		day, ok := r.Payload.(models.ForecastDay)
		if !ok {
			continue
		}
		condition := orNA(cell(day.Condition))
		high := fmt1(cToF(day.TempMaxC))
		low := fmt1(cToF(day.TempMinC))
		// The daytime block is sometimes absent from the payload;
		// its columns degrade to placeholders rather than zeros.
		rain, wind, chance := placeholderNA, placeholderNA, placeholderNA
		if day.HasConditions {
			rain = fmt1(mmToIn(day.PrecipMM))
			wind = fmt1(kmhToMPH(day.WindKMH))
			chance = pct(day.PrecipChance)
		}
		rows = append(rows, "| "+condition+" | "+high+" | "+low+" | "+chance+" | "+rain+" | "+wind+" |")
	}
	rows = dedupeLines(rows)

	var b strings.Builder
	b.WriteString(marker + "\n\n")
	b.WriteString(stamp(now) + "\n\n")
	b.WriteString("| Conditions | High (°F) | Low (°F) | Precip Chance | Rain (in) | Wind (mph) |\n")
	b.WriteString("|------------|-----------|----------|---------------|-----------|------------|\n")
	b.WriteString(strings.Join(rows, "\n") + "\n")
	return Section{Marker: marker, Body: b.String()}
}
