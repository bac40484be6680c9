package tempo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// easings maps config-friendly names to gween easing curves.
var easings = map[string]ease.TweenFunc{
	"linear": ease.Linear,

	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,

	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,

	"in-quart":     ease.InQuart,
	"out-quart":    ease.OutQuart,
	"in-out-quart": ease.InOutQuart,

	"in-quint":     ease.InQuint,
	"out-quint":    ease.OutQuint,
	"in-out-quint": ease.InOutQuint,

	"in-sine":     ease.InSine,
	"out-sine":    ease.OutSine,
	"in-out-sine": ease.InOutSine,

	"in-expo":     ease.InExpo,
	"out-expo":    ease.OutExpo,
	"in-out-expo": ease.InOutExpo,

	"in-circ":     ease.InCirc,
	"out-circ":    ease.OutCirc,
	"in-out-circ": ease.InOutCirc,

	"in-back":     ease.InBack,
	"out-back":    ease.OutBack,
	"in-out-back": ease.InOutBack,

	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,

	"in-bounce":     ease.InBounce,
	"out-bounce":    ease.OutBounce,
	"in-out-bounce": ease.InOutBounce,
}

// EasingByName looks up an easing curve by its kebab-case name, such as
// "in-out-cubic". Names are case-insensitive.
func EasingByName(name string) (ease.TweenFunc, error) {
	fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// EasingNames returns every name EasingByName accepts, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
