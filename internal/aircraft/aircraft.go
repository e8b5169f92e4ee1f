// Aircraft registry with cruise performance data
package aircraft

import "fmt"

// Unit conversion constants.
const (
	KtsToMPerS  = 0.51444
	KtsToFtPerS = 1.6878
)

// Aircraft identifies an airframe in the flight dynamics model and carries
// the cruise performance figures used for target and range estimates.
type Aircraft struct {
	ID             string // flight dynamics model identifier
	FlightGearID   string // identifier for FlightGear visualization
	Name           string
	CruiseSpeedKts float64
}

// CruiseSpeedFPS returns the cruise speed in ft/s.
func (a Aircraft) CruiseSpeedFPS() float64 {
	return a.CruiseSpeedKts * KtsToFtPerS
}

// MaxDistanceM estimates how far the aircraft can travel in an episode of
// the given duration, with a 10% margin.
func (a Aircraft) MaxDistanceM(episodeTimeS float64) float64 {
	const margin = 0.1
	return a.CruiseSpeedKts * KtsToMPerS * episodeTimeS * (1 + margin)
}

// Registered airframes.
var (
	C172 = Aircraft{"c172p", "c172p", "C172", 120}
	PA28 = Aircraft{"pa28", "PA28-161-180", "PA28", 130}
	J3   = Aircraft{"J3Cub", "J3Cub", "J3", 70}
	F15  = Aircraft{"f15", "f15c", "F15", 500}
	F16  = Aircraft{"f16", "f16-block-52", "F16", 550}
	OV10 = Aircraft{"OV10", "OV10_USAFE", "OV10", 200}
	PC7  = Aircraft{"pc7", "pc7", "PC7", 170}
	A320 = Aircraft{"A320", "A320-200-CFM", "A320", 250}
	B747 = Aircraft{"B747", "747-400", "B747", 250}
	MD11 = Aircraft{"MD11", "MD-11", "MD11", 250}
	DHC6 = Aircraft{"DHC6", "dhc6jsb", "DHC6", 170}
)

var registry = map[string]Aircraft{
	"c172": C172,
	"pa28": PA28,
	"j3":   J3,
	"f15":  F15,
	"f16":  F16,
	"ov10": OV10,
	"pc7":  PC7,
	"a320": A320,
	"b747": B747,
	"md11": MD11,
	"dhc6": DHC6,
}

// ByName looks up an airframe by its registry key (e.g. "c172").
func ByName(name string) (Aircraft, error) {
	a, ok := registry[name]
	if !ok {
		return Aircraft{}, fmt.Errorf("unknown aircraft %q", name)
	}
	return a, nil
}
