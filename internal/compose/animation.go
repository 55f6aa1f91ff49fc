package compose

import (
	"fmt"
	"strconv"
	"strings"
)

// Animation names one authored character animation.
type Animation string

const (
	Walk    Animation = "walk"
	RunSlow Animation = "run_slow"
	RunFast Animation = "run_fast"
)

// Numbered animation families.
const (
	familyLoser  = "loser"
	familyWinner = "winner"
)

// NumberedAnimations is how many loser and winner animations exist.
const NumberedAnimations = 5

// Animations returns every known animation.
func Animations() []Animation {
	out := []Animation{Walk, RunSlow, RunFast}
	for _, family := range []string{familyLoser, familyWinner} {
		for n := 1; n <= NumberedAnimations; n++ {
			out = append(out, Animation(fmt.Sprintf("%s_%d", family, n)))
		}
	}
	return out
}

// ParseAnimation validates an animation name such as "walk" or "loser_2".
func ParseAnimation(s string) (Animation, error) {
	a := Animation(s)
	switch a {
	case Walk, RunSlow, RunFast:
		return a, nil
	}
	if family, n, ok := a.numbered(); ok && n >= 1 && n <= NumberedAnimations {
		return Animation(fmt.Sprintf("%s_%d", family, n)), nil
	}
	return "", fmt.Errorf("invalid animation type: %s (valid: walk, run_slow, run_fast, loser_1..%d, winner_1..%d)",
		s, NumberedAnimations, NumberedAnimations)
}

// numbered splits "loser_2" into ("loser", 2).
func (a Animation) numbered() (string, int, bool) {
	family, num, ok := strings.Cut(string(a), "_")
	if !ok || (family != familyLoser && family != familyWinner) {
		return "", 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return "", 0, false
	}
	return family, n, true
}

// FragmentPath is the registry path of a part fragment. variant is 0-based;
// files are numbered from 1.
func (a Animation) FragmentPath(p Part, variant int) string {
	file := strconv.Itoa(variant + 1)
	if family, n, ok := a.numbered(); ok {
		return fmt.Sprintf("%s/%s/%d/%s.json", p, family, n, file)
	}
	return fmt.Sprintf("%s/%s/%s.json", p, a, file)
}

// StackOrderPath is the registry path of the stack order file holding a.
func (a Animation) StackOrderPath() string {
	if family, _, ok := a.numbered(); ok {
		return fmt.Sprintf("originals/%s/stack-order.json", family)
	}
	return fmt.Sprintf("originals/%s/stack-order.json", a)
}

// StackOrderKey is the key of a inside its stack order file, e.g. "loser02".
func (a Animation) StackOrderKey() string {
	if family, n, ok := a.numbered(); ok {
		return fmt.Sprintf("%s%02d", family, n)
	}
	return string(a)
}

// BasePath is the registry path of the base document of a.
func (a Animation) BasePath() string {
	return fmt.Sprintf("bases/%s.json", a)
}
