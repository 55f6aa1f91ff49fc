// Package compose assembles character animations from pre-authored part
// fragments and provides the tools used to cut those fragments out of full
// character documents.
package compose

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"
)

// ErrNotFound is wrapped by every error caused by a missing fragment, stack
// order, base document or element.
var ErrNotFound = errors.New("not found")

// Part names one body part of a character. The name matches the "nm" of
// the part's root layer and assets.
type Part string

// Standard parts, selectable for every animation.
const (
	Accessory Part = "accessory"
	Head      Part = "head"
	Body      Part = "body"
	FrontArm  Part = "front_arm"
	BackArm   Part = "back_arm"
	FrontLeg  Part = "front_leg"
	BackLeg   Part = "back_leg"
)

// Extended parts, only present in some animations. Their variant follows
// the back arm unless set explicitly.
const (
	BackHand      Part = "back_hand"
	BackForearm   Part = "back_forearm"
	BackForearm02 Part = "back_forearm02"
)

// StandardParts returns the parts every character has, in selector order.
func StandardParts() []Part {
	return []Part{Accessory, Head, Body, FrontArm, BackArm, FrontLeg, BackLeg}
}

// ExtendedParts returns the animation specific parts.
func ExtendedParts() []Part {
	return []Part{BackHand, BackForearm, BackForearm02}
}

// AllParts returns standard and extended parts.
func AllParts() []Part {
	return append(StandardParts(), ExtendedParts()...)
}

// ParsePart converts a layer name to a Part.
func ParsePart(s string) (Part, bool) {
	p := Part(s)
	if slices.Contains(AllParts(), p) {
		return p, true
	}
	return "", false
}

// IsExtended reports whether p is an extended part.
func (p Part) IsExtended() bool {
	return slices.Contains(ExtendedParts(), p)
}

// DefaultVariants is the number of authored variants of each part.
const DefaultVariants = 5

// Character selects a variant (0-based) for each part.
type Character map[Part]int

// Variant returns the variant chosen for p. Extended parts fall back to the
// back arm's variant.
func (c Character) Variant(p Part) (int, bool) {
	if v, ok := c[p]; ok {
		return v, true
	}
	if p.IsExtended() {
		v, ok := c[BackArm]
		return v, ok
	}
	return 0, false
}

// RandomCharacter draws a variant in [0, variants) for every standard part.
func RandomCharacter(rng *rand.Rand, variants int) Character {
	if variants <= 0 {
		variants = DefaultVariants
	}
	c := make(Character, len(StandardParts()))
	for _, p := range StandardParts() {
		c[p] = rng.Intn(variants)
	}
	return c
}

// ParseAssignments applies "part=variant" assignments to c. Variants are
// 0-based.
func (c Character) ParseAssignments(specs []string) error {
	for _, spec := range specs {
		name, value, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("invalid part assignment %q (expected part=variant)", spec)
		}
		part, ok := ParsePart(strings.TrimSpace(name))
		if !ok {
			return fmt.Errorf("unknown part %q", name)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("invalid variant %q for part %s", value, part)
		}
		c[part] = n
	}
	return nil
}
