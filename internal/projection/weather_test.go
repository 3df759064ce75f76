package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridiron-labs/bestball/internal/model"
)

func TestWeatherMultiplier(t *testing.T) {
	high := &model.WeatherReport{TempF: 12, WindMPH: 28, Condition: "snow", Severity: model.SeverityHigh}

	assert.Equal(t, 0.85, WeatherMultiplier(model.PositionQB, high))
	assert.Equal(t, 0.75, WeatherMultiplier(model.PositionK, high), "kickers suffer most")
	assert.Equal(t, 1.10, WeatherMultiplier(model.PositionDST, high), "defenses benefit")
	assert.Equal(t, 0.92, WeatherMultiplier(model.PositionRB, high))
}

func TestWeatherMultiplier_NoAdjustment(t *testing.T) {
	assert.Equal(t, 1.0, WeatherMultiplier(model.PositionQB, nil))
	assert.Equal(t, 1.0, WeatherMultiplier(model.PositionQB, &model.WeatherReport{Dome: true, Severity: model.SeverityHigh}))
	assert.Equal(t, 1.0, WeatherMultiplier(model.PositionQB, &model.WeatherReport{Severity: model.SeverityNone}))
}

func TestAdjustForWeather(t *testing.T) {
	w := &model.WeatherReport{WindMPH: 18, Severity: model.SeverityMedium}

	adjusted, factor := AdjustForWeather(20, model.PositionWR, w)
	assert.InDelta(t, 18.8, adjusted, 1e-9)
	assert.Equal(t, 0.94, factor)

	adjusted, factor = AdjustForWeather(20, model.PositionWR, nil)
	assert.Equal(t, 20.0, adjusted)
	assert.Equal(t, 1.0, factor)
}
